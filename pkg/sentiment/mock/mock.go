// Package mock provides a test double for the sentiment scorer contract.
package mock

import "github.com/havenchat/haven/pkg/sentiment"

// Scorer returns a fixed score and records every scored text.
type Scorer struct {
	// ScoreResult is returned by Score when Err is nil.
	ScoreResult float64

	// Err is returned by Score when non-nil, allowing error injection.
	Err error

	// Calls records every text passed to Score.
	Calls []string
}

var _ sentiment.Scorer = (*Scorer)(nil)

// Score records the text and returns the configured result.
func (m *Scorer) Score(text string) (float64, error) {
	m.Calls = append(m.Calls, text)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.ScoreResult, nil
}

// Reset clears recorded calls and configured results.
func (m *Scorer) Reset() {
	m.ScoreResult = 0
	m.Err = nil
	m.Calls = nil
}
