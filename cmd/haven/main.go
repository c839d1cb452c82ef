// Command haven is the main entry point for the Haven support-chat server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/havenchat/haven/internal/app"
	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/observe"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "haven: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "haven: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logLevel := new(slog.LevelVar)
	logLevel.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("haven starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry provider ────────────────────────────────────────────────────
	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Application ───────────────────────────────────────────────────────────
	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	// ── Config hot reload ─────────────────────────────────────────────────────
	// Log level and engine settings apply live; anything else needs a restart.
	watcher, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
		diff := config.Diff(old, new)
		if diff.LogLevelChanged {
			logLevel.Set(slogLevel(diff.NewLogLevel))
			slog.Info("log level updated", "level", diff.NewLogLevel)
		}
		if diff.EngineChanged {
			if err := application.Responder().SetEngine(diff.NewEngine); err != nil {
				slog.Warn("engine config rejected", "err", err)
			} else {
				slog.Info("engine config updated",
					"keyword_match", diff.NewEngine.KeywordMatch,
					"crisis_first", diff.NewEngine.CrisisFirst,
				)
			}
		}
		if diff.RestartRequired {
			slog.Warn("config change requires a restart to take effect")
		}
	})
	if err != nil {
		slog.Warn("config watcher disabled", "err", err)
	} else {
		defer watcher.Stop()
	}

	printStartupSummary(cfg)
	slog.Info("server ready — press Ctrl+C to shut down")

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	slog.Info("shutdown signal received, stopping…")

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          Haven — startup summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printField("Listen addr", cfg.Server.ListenAddr)
	if cfg.Server.TLS != nil {
		printField("TLS", "enabled")
	} else {
		printField("TLS", "(disabled)")
	}
	if cfg.History.PostgresDSN != "" {
		printField("History", "postgres")
	} else {
		printField("History", "in-memory")
	}
	scorer := cfg.Sentiment.Provider
	if scorer == "" {
		scorer = "vader"
	}
	printField("Sentiment", scorer)
	match := string(cfg.Engine.KeywordMatch)
	if match == "" {
		match = string(config.MatchSubstring)
	}
	printField("Keyword match", match)
	if cfg.Discord.Token != "" {
		printField("Discord", "connected")
	} else {
		printField("Discord", "(disabled)")
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printField(name, value string) {
	if value == "" {
		value = "(not configured)"
	}
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-14s  : %-19s ║\n", name, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
