package config

import (
	"errors"
	"testing"

	"github.com/havenchat/haven/pkg/sentiment"
	"github.com/havenchat/haven/pkg/sentiment/mock"
)

func TestDefaultRegistryBuiltins(t *testing.T) {
	t.Parallel()
	r := DefaultRegistry()
	for _, name := range []string{"vader", "lexicon"} {
		s, err := r.CreateScorer(SentimentConfig{Provider: name})
		if err != nil {
			t.Errorf("CreateScorer(%q): %v", name, err)
			continue
		}
		if s == nil {
			t.Errorf("CreateScorer(%q) returned nil scorer", name)
		}
	}
}

func TestCreateScorerDefaultsToVader(t *testing.T) {
	t.Parallel()
	r := DefaultRegistry()
	s, err := r.CreateScorer(SentimentConfig{})
	if err != nil {
		t.Fatalf("CreateScorer: %v", err)
	}
	if s == nil {
		t.Fatal("CreateScorer returned nil scorer")
	}
}

func TestCreateScorerUnregistered(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	_, err := r.CreateScorer(SentimentConfig{Provider: "nope"})
	if !errors.Is(err, ErrScorerNotRegistered) {
		t.Errorf("err = %v, want ErrScorerNotRegistered", err)
	}
}

func TestRegisterScorerOverrides(t *testing.T) {
	t.Parallel()
	r := DefaultRegistry()
	want := &mock.Scorer{ScoreResult: 0.42}
	r.RegisterScorer("vader", func(SentimentConfig) (sentiment.Scorer, error) {
		return want, nil
	})
	got, err := r.CreateScorer(SentimentConfig{Provider: "vader"})
	if err != nil {
		t.Fatalf("CreateScorer: %v", err)
	}
	if got != want {
		t.Error("registration must overwrite the previous factory")
	}
}
