// Package vader scores sentiment with the VADER model (govader port), tuned
// for short informal messages. The compound score already lands in [-1, 1],
// the same scale the response engine thresholds against.
package vader

import (
	"sync"

	"github.com/jonreiter/govader"

	"github.com/havenchat/haven/pkg/sentiment"
)

// Scorer wraps a govader analyzer. The analyzer keeps internal state during
// scoring, so calls are serialized.
type Scorer struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ sentiment.Scorer = (*Scorer)(nil)

// New returns a Scorer backed by the default VADER lexicon.
func New() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound polarity of text.
func (s *Scorer) Score(text string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.PolarityScores(text).Compound, nil
}
