package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/regexfav/internal/app"
	"github.com/five82/regexfav/internal/config"
	"github.com/five82/regexfav/internal/prefs"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "regexfav: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
	apiBase    string
	logLevel   string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIBase:    g.apiBase,
		LogLevel:   g.logLevel,
	}
}

// openStore bootstraps config and logging and opens the prefs store.
func (g *globalFlags) openStore() (*prefs.Store, config.Config, func(), error) {
	cfg, closeLog, err := app.Bootstrap(g.options())
	if err != nil {
		return nil, config.Config{}, closeLog, err
	}
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		closeLog()
		return nil, config.Config{}, func() {}, fmt.Errorf("open prefs: %w", err)
	}
	return store, cfg, closeLog, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var theme string

	root := &cobra.Command{
		Use:           "regexfav",
		Short:         "Browse and load your favourite community regex patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := g.options()
			opts.ThemeName = theme
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&g.prefsPath, "prefs", "", "prefs file (default "+prefs.DefaultPath()+")")
	pf.StringVar(&g.apiBase, "api", "", "community API base URL")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().StringVar(&theme, "theme", "", "UI theme: Nightfox, Kanagawa, Slate")

	root.AddCommand(
		newPreviewCmd(),
		newFavCmd(g),
		newRateCmd(g),
		newLogsCmd(g),
	)
	return root
}
