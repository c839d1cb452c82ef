package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/havenchat/haven/pkg/sentiment"
	"github.com/havenchat/haven/pkg/sentiment/lexicon"
	"github.com/havenchat/haven/pkg/sentiment/vader"
)

// ErrScorerNotRegistered is returned by [Registry.CreateScorer] when no
// factory has been registered under the requested provider name.
var ErrScorerNotRegistered = errors.New("config: sentiment scorer not registered")

// Registry maps sentiment provider names to their constructor functions.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	scorers map[string]func(SentimentConfig) (sentiment.Scorer, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		scorers: make(map[string]func(SentimentConfig) (sentiment.Scorer, error)),
	}
}

// DefaultRegistry returns a Registry with the built-in scorers registered:
// "vader" and "lexicon".
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterScorer("vader", func(SentimentConfig) (sentiment.Scorer, error) {
		return vader.New(), nil
	})
	r.RegisterScorer("lexicon", func(SentimentConfig) (sentiment.Scorer, error) {
		return lexicon.New(), nil
	})
	return r
}

// RegisterScorer registers a scorer factory under name.
// Subsequent calls with the same name overwrite the previous registration.
func (r *Registry) RegisterScorer(name string, factory func(SentimentConfig) (sentiment.Scorer, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scorers[name] = factory
}

// CreateScorer instantiates the scorer selected by cfg.Provider. An empty
// provider name selects "vader".
func (r *Registry) CreateScorer(cfg SentimentConfig) (sentiment.Scorer, error) {
	name := cfg.Provider
	if name == "" {
		name = "vader"
	}

	r.mu.RLock()
	factory, ok := r.scorers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrScorerNotRegistered, name)
	}

	scorer, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: create scorer %q: %w", name, err)
	}
	return scorer, nil
}
