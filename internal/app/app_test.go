package app

import (
	"context"
	"testing"
	"time"

	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/observe"
	"github.com/havenchat/haven/pkg/history/memstore"
	historymock "github.com/havenchat/haven/pkg/history/mock"
	sentimentmock "github.com/havenchat/haven/pkg/sentiment/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddr: "127.0.0.1:0",
			LogLevel:   config.LogInfo,
		},
		Sentiment: config.SentimentConfig{Provider: "lexicon"},
	}
}

func TestNewWithInjectedSubsystems(t *testing.T) {
	t.Parallel()
	store := &historymock.Store{}
	scorer := &sentimentmock.Scorer{ScoreResult: 0.3}

	a, err := New(context.Background(), testConfig(),
		WithStore(store),
		WithScorer("mock", scorer),
		WithMetrics(newTestMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, _, err := a.Responder().Respond(context.Background(), "s1", "web", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if resp.Text == "" {
		t.Error("want a response from the wired turn loop")
	}
	if len(scorer.Calls) != 1 {
		t.Errorf("scorer calls = %d, want 1", len(scorer.Calls))
	}
	if store.LastAppend() == nil {
		t.Error("exchange was not appended to the injected store")
	}
}

func TestNewUsesDefaultMetrics(t *testing.T) {
	t.Parallel()
	a, err := New(context.Background(), testConfig(),
		WithStore(&historymock.Store{}),
		WithScorer("mock", &sentimentmock.Scorer{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.metrics != observe.DefaultMetrics() {
		t.Error("metrics should fall back to the package default when not injected")
	}
}

func TestNewFallsBackToMemoryStore(t *testing.T) {
	t.Parallel()
	a, err := New(context.Background(), testConfig(), WithMetrics(newTestMetrics(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := a.store.(*memstore.Store); !ok {
		t.Errorf("store = %T, want the in-memory store when no DSN is set", a.store)
	}
	if a.scorerName != "lexicon" {
		t.Errorf("scorer = %q, want lexicon", a.scorerName)
	}
}

func TestBuildEngine(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		cfg     config.EngineConfig
		wantErr bool
	}{
		{"default", config.EngineConfig{}, false},
		{"substring", config.EngineConfig{KeywordMatch: config.MatchSubstring}, false},
		{"token", config.EngineConfig{KeywordMatch: config.MatchToken}, false},
		{"phonetic", config.EngineConfig{KeywordMatch: config.MatchPhonetic}, false},
		{"crisis first", config.EngineConfig{CrisisFirst: true}, false},
		{"unknown mode", config.EngineConfig{KeywordMatch: "fuzzy"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			engine, err := buildEngine(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildEngine: %v", err)
			}
			if engine == nil {
				t.Fatal("engine is nil")
			}
		})
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	t.Parallel()
	closed := 0
	a := &App{closers: []func() error{func() error { closed++; return nil }}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if closed != 1 {
		t.Errorf("closer ran %d times, want 1", closed)
	}
}
