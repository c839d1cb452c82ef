package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestWatcherInitialLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "haven.yaml")
	writeConfig(t, path, "server:\n  listen_addr: \":8080\"\n")

	w, err := NewWatcher(path, nil, WithInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if got := w.Current().Server.ListenAddr; got != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", got)
	}
}

func TestWatcherInitialLoadFailure(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "haven.yaml")
	writeConfig(t, path, "server:\n  log_level: verbose\n")

	if _, err := NewWatcher(path, nil); err == nil {
		t.Fatal("invalid initial config must fail NewWatcher")
	}
}

func TestWatcherDetectsChange(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "haven.yaml")
	writeConfig(t, path, "server:\n  log_level: info\n")

	changed := make(chan *Config, 1)
	w, err := NewWatcher(path, func(old, new *Config) {
		changed <- new
	}, WithInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	// Ensure a later mtime even on coarse filesystem clocks.
	time.Sleep(20 * time.Millisecond)
	writeConfig(t, path, "server:\n  log_level: debug\n")
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	select {
	case cfg := <-changed:
		if cfg.Server.LogLevel != LogDebug {
			t.Errorf("reloaded log level = %q, want debug", cfg.Server.LogLevel)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	if got := w.Current().Server.LogLevel; got != LogDebug {
		t.Errorf("Current log level = %q, want debug", got)
	}
}

func TestWatcherKeepsOldConfigOnInvalidRewrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "haven.yaml")
	writeConfig(t, path, "server:\n  log_level: info\n")

	w, err := NewWatcher(path, func(old, new *Config) {
		t.Error("onChange must not fire for an invalid rewrite")
	}, WithInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	time.Sleep(20 * time.Millisecond)
	writeConfig(t, path, "server:\n  log_level: verbose\n")
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := w.Current().Server.LogLevel; got != LogInfo {
		t.Errorf("Current log level = %q, want info (old config retained)", got)
	}
}
