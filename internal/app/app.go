// Package app wires all Haven subsystems into a running application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run serves the presentation layers, and Shutdown tears
// everything down in order.
//
// For testing, inject mock implementations via functional options
// (WithStore, WithScorer, etc.). When an option is not provided, New creates
// real implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/discord"
	"github.com/havenchat/haven/internal/health"
	"github.com/havenchat/haven/internal/observe"
	"github.com/havenchat/haven/internal/web"
	"github.com/havenchat/haven/pkg/dialogue"
	"github.com/havenchat/haven/pkg/history"
	"github.com/havenchat/haven/pkg/history/guard"
	"github.com/havenchat/haven/pkg/history/memstore"
	"github.com/havenchat/haven/pkg/history/postgres"
	"github.com/havenchat/haven/pkg/sentiment"
)

// App owns all subsystem lifetimes and serves chat turns over HTTP,
// WebSocket, and optionally Discord.
type App struct {
	cfg *config.Config

	// Subsystems — initialised in New, torn down in Shutdown.
	store      history.Store
	scorer     sentiment.Scorer
	scorerName string
	metrics    *observe.Metrics
	responder  *Responder
	server     *web.Server
	bot        *discord.Bot

	// closers are called in order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithStore injects a history store instead of creating one from config.
func WithStore(s history.Store) Option {
	return func(a *App) { a.store = s }
}

// WithScorer injects a sentiment scorer instead of creating one from config.
// The name tags scorer-error metrics.
func WithScorer(name string, s sentiment.Scorer) Option {
	return func(a *App) {
		a.scorerName = name
		a.scorer = s
	}
}

// WithMetrics injects a metrics bundle instead of using the default provider.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. Use Option functions
// to inject test doubles for any subsystem.
//
// New performs all initialisation synchronously: history store connection,
// scorer construction, dialogue engine assembly, and server setup. The
// Discord bot, when configured, connects here too.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, o := range opts {
		o(a)
	}

	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	if err := a.initStore(ctx); err != nil {
		return nil, fmt.Errorf("app: init history store: %w", err)
	}

	if err := a.initScorer(); err != nil {
		return nil, fmt.Errorf("app: init scorer: %w", err)
	}

	engine, err := buildEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("app: init dialogue engine: %w", err)
	}

	a.responder = NewResponder(engine, a.scorer, a.scorerName, a.store, a.metrics, cfg.History.Window)

	serverOpts := []web.ServerOption{
		web.WithHealthChecks(health.ScorerCheck(a.scorer)),
	}
	if cfg.Server.TLS != nil {
		serverOpts = append(serverOpts, web.WithTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile))
	}
	a.server = web.NewServer(cfg.Server.ListenAddr, a.responder, a.store, a.metrics, serverOpts...)

	if cfg.Discord.Token != "" {
		bot, err := discord.New(discord.Config{
			Token:   cfg.Discord.Token,
			GuildID: cfg.Discord.GuildID,
		}, a.responder)
		if err != nil {
			return nil, fmt.Errorf("app: init discord bot: %w", err)
		}
		a.bot = bot
		a.closers = append(a.closers, bot.Close)
	}

	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initStore connects the PostgreSQL history store, or falls back to the
// in-memory store when no DSN is configured.
func (a *App) initStore(ctx context.Context) error {
	if a.store != nil {
		return nil
	}

	dsn := a.cfg.History.PostgresDSN
	if dsn == "" {
		slog.Warn("history.postgres_dsn not set, conversation history will not survive restarts")
		a.store = memstore.New()
		return nil
	}

	store, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return err
	}
	// The breaker turns a flapping database into fast context-free turns
	// instead of per-turn connection timeouts.
	a.store = guard.Wrap(store, guard.Config{})
	a.closers = append(a.closers, func() error {
		store.Close()
		return nil
	})
	return nil
}

// initScorer builds the configured sentiment scorer via the registry.
func (a *App) initScorer() error {
	if a.scorer != nil {
		return nil
	}

	name := a.cfg.Sentiment.Provider
	if name == "" {
		name = "vader"
	}
	scorer, err := config.DefaultRegistry().CreateScorer(a.cfg.Sentiment)
	if err != nil {
		return err
	}
	a.scorerName = name
	a.scorer = scorer
	return nil
}

// buildEngine assembles the dialogue engine from the engine config.
func buildEngine(cfg config.EngineConfig) (*dialogue.Engine, error) {
	var opts []dialogue.Option

	switch cfg.KeywordMatch {
	case "", config.MatchSubstring:
		// engine default
	case config.MatchToken:
		opts = append(opts, dialogue.WithKeywordMatcher(dialogue.TokenMatcher{}))
	case config.MatchPhonetic:
		opts = append(opts, dialogue.WithKeywordMatcher(dialogue.PhoneticMatcher{}))
	default:
		return nil, fmt.Errorf("unknown keyword_match mode %q", cfg.KeywordMatch)
	}

	if cfg.CrisisFirst {
		opts = append(opts, dialogue.WithCrisisFirst())
	}

	return dialogue.New(opts...), nil
}

// ─── Run ─────────────────────────────────────────────────────────────────────

// Run serves the web server and the Discord bot until ctx is cancelled or
// either of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.server.Serve(ctx) })
	if a.bot != nil {
		g.Go(func() error { return a.bot.Run(ctx) })
	}

	slog.Info("app running",
		"listen", a.cfg.Server.ListenAddr,
		"scorer", a.scorerName,
		"discord", a.bot != nil,
	)
	return g.Wait()
}

// Responder returns the shared turn loop, for presentation layers created
// outside New.
func (a *App) Responder() *Responder { return a.responder }

// ─── Shutdown ────────────────────────────────────────────────────────────────

// Shutdown tears down all subsystems in order. It respects the context
// deadline: if ctx expires before all closers finish, remaining closers are
// skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}
