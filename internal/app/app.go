package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/regexfav/internal/community"
	"github.com/five82/regexfav/internal/config"
	"github.com/five82/regexfav/internal/logging"
	"github.com/five82/regexfav/internal/prefs"
	"github.com/five82/regexfav/internal/state"
	"github.com/five82/regexfav/internal/ui"
)

// Options configure the regexfav application. Empty fields fall back to the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string
	APIBase    string
	LogLevel   string
	ThemeName  string
}

// Bootstrap loads configuration and installs the global logger. The returned
// func closes the log file.
func Bootstrap(opts Options) (config.Config, func(), error) {
	noop := func() {}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, noop, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Override(opts.APIBase, opts.PrefsPath)
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return config.Config{}, noop, fmt.Errorf("init logging: %w", err)
	}
	logging.Install(logger)
	return cfg, closeLog, nil
}

// Run boots the regexfav TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, closeLog, err := Bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.Component("app")

	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}

	client, err := community.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	dispatcher := NewDispatcher(client, logging.Component("dispatch"), 0)
	dispatcher.Start(ctx)
	defer func() {
		cancel()
		dispatcher.Wait()
	}()

	logger.Info().
		Str("api", cfg.APIBase).
		Str("prefs", store.Path()).
		Int("favorites", len(store.AllFavorites())).
		Msg("starting")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Service:   dispatcher,
		Store:     store,
		Document:  &state.Document{},
		Config:    cfg,
		ThemeName: opts.ThemeName,
	})
	if err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		return err
	}
	logger.Info().Msg("stopped")
	return nil
}
