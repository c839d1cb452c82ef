// Package sentiment defines the scoring contract the response engine consumes.
//
// A [Scorer] reduces one user message to a single polarity value in [-1, 1];
// the engine only ever branches on fixed thresholds of that value. Concrete
// providers live in subpackages (vader, lexicon) and are registered by name
// in the config registry.
package sentiment

// Scorer rates the emotional polarity of a text. Implementations must be
// safe for concurrent use and must not fabricate a score on failure: a
// non-nil error means the turn is aborted, not scored as neutral.
type Scorer interface {
	// Score returns a polarity in [-1, 1]: negative values for distressed
	// or unhappy text, positive for upbeat text, near zero for neutral.
	Score(text string) (float64, error)
}
