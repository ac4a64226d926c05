package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}

	wantPrefs, err := expandPath(defaultPrefsPath)
	if err != nil {
		t.Fatalf("expandPath(defaultPrefsPath) returned error: %v", err)
	}
	if cfg.PrefsPath != wantPrefs {
		t.Fatalf("PrefsPath = %q, want %q", cfg.PrefsPath, wantPrefs)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.PreviewLength != 125 {
		t.Fatalf("PreviewLength = %d, want 125", cfg.PreviewLength)
	}
	if cfg.SettleDelay != 100*time.Millisecond {
		t.Fatalf("SettleDelay = %v, want 100ms", cfg.SettleDelay)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  http://127.0.0.1:8080  "
prefs_path = "  ~/.regexfav/prefs.toml  "
log_file = "~/logs/rf.log"
log_level = " DEBUG "
preview_length = 80
settle_delay_ms = 250
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://127.0.0.1:8080" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "http://127.0.0.1:8080")
	}
	if want := filepath.Join(home, ".regexfav", "prefs.toml"); cfg.PrefsPath != want {
		t.Fatalf("PrefsPath = %q, want %q", cfg.PrefsPath, want)
	}
	if want := filepath.Join(home, "logs", "rf.log"); cfg.LogFile != want {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PreviewLength != 80 {
		t.Fatalf("PreviewLength = %d, want 80", cfg.PreviewLength)
	}
	if cfg.SettleDelay != 250*time.Millisecond {
		t.Fatalf("SettleDelay = %v, want 250ms", cfg.SettleDelay)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
log_level = ""
preview_length = -3
settle_delay_ms = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_base = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestOverride_AppliesNonEmptyValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	base := Default()
	got := base.Override("  ", "")
	if got != base {
		t.Fatalf("Override with blanks changed config: %+v", got)
	}

	got = base.Override("localhost:9000", "~/p.toml")
	if got.APIBase != "localhost:9000" {
		t.Fatalf("APIBase = %q, want localhost:9000", got.APIBase)
	}
	if want := filepath.Join(home, "p.toml"); got.PrefsPath != want {
		t.Fatalf("PrefsPath = %q, want %q", got.PrefsPath, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
