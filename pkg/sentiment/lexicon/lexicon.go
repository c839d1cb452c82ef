// Package lexicon scores sentiment with a hand-tuned word-polarity table,
// negation flipping and intensifier weighting. It needs no model data and is
// the dependency-free fallback provider; its vocabulary leans toward the
// distress language this service sees.
package lexicon

import (
	"math"
	"strings"

	"github.com/havenchat/haven/pkg/sentiment"
)

const punctCutset = ".,!?;:'\"()"

// Scorer is a stateless lexicon scorer. The zero value is not usable; call
// [New].
type Scorer struct {
	positive     map[string]float64
	negative     map[string]float64
	intensifiers map[string]float64
	negations    map[string]bool
}

var _ sentiment.Scorer = (*Scorer)(nil)

// New returns a Scorer with the built-in vocabulary.
func New() *Scorer {
	return &Scorer{
		positive:     positiveWords,
		negative:     negativeWords,
		intensifiers: intensifierWords,
		negations:    negationWords,
	}
}

// Score averages the polarity of matched words, flips polarity after a
// negation ("not happy" counts as negative) and scales by a preceding
// intensifier ("really sad" weighs more than "sad"). Texts with no matched
// words score 0. The result is clamped to [-1, 1]. Score never fails.
func (s *Scorer) Score(text string) (float64, error) {
	words := strings.Fields(strings.ToLower(text))

	var total float64
	var matched int
	for i, raw := range words {
		word := strings.Trim(raw, punctCutset)

		negated := false
		mult := 1.0
		if i > 0 {
			prev := strings.Trim(words[i-1], punctCutset)
			negated = s.negations[prev]
			if m, ok := s.intensifiers[prev]; ok {
				mult = m
			}
		}

		if w, ok := s.positive[word]; ok {
			if negated {
				total -= w * mult
			} else {
				total += w * mult
			}
			matched++
		} else if w, ok := s.negative[word]; ok {
			if negated {
				total += w * mult
			} else {
				total -= w * mult
			}
			matched++
		}
	}

	if matched == 0 {
		return 0, nil
	}
	return math.Max(-1, math.Min(1, total/float64(matched))), nil
}

var positiveWords = map[string]float64{
	"good": 0.6, "better": 0.7, "best": 0.8,
	"happy": 0.8, "glad": 0.6, "great": 0.7,
	"wonderful": 0.9, "amazing": 0.9, "love": 0.8,
	"like": 0.4, "hope": 0.6, "hopeful": 0.7,
	"grateful": 0.8, "thankful": 0.7, "thanks": 0.5,
	"helped": 0.6, "helpful": 0.6, "safe": 0.7,
	"calm": 0.6, "relaxed": 0.6, "peaceful": 0.7,
	"strong": 0.6, "confident": 0.6, "brave": 0.7,
	"okay": 0.3, "fine": 0.3, "alright": 0.3,
	"improving": 0.6, "progress": 0.5, "healing": 0.6,
	"support": 0.5, "comfort": 0.5, "smile": 0.6,
}

var negativeWords = map[string]float64{
	"sad": 0.6, "depressed": 0.8, "hopeless": 0.9,
	"anxious": 0.6, "worried": 0.5, "scared": 0.7,
	"angry": 0.7, "furious": 0.9, "hate": 0.8,
	"terrible": 0.8, "awful": 0.8, "horrible": 0.8,
	"worst": 0.9, "bad": 0.5, "painful": 0.7,
	"hurt": 0.7, "suffering": 0.8, "miserable": 0.8,
	"lonely": 0.6, "alone": 0.5, "empty": 0.7,
	"numb": 0.6, "worthless": 0.9, "useless": 0.8,
	"failure": 0.8, "burden": 0.8, "guilty": 0.6,
	"ashamed": 0.7, "afraid": 0.7, "panic": 0.8,
	"overwhelmed": 0.7, "stressed": 0.6, "exhausted": 0.6,
	"crying": 0.5, "tears": 0.5, "broken": 0.8,
	"trapped": 0.8, "stuck": 0.5, "lost": 0.5,
}

var intensifierWords = map[string]float64{
	"very":       1.5,
	"really":     1.4,
	"extremely":  1.8,
	"incredibly": 1.7,
	"so":         1.3,
	"absolutely": 1.6,
	"completely": 1.5,
	"totally":    1.4,
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "nothing": true, "nowhere": true, "nor": true,
	"cannot": true, "can't": true, "won't": true, "don't": true,
	"doesn't": true, "didn't": true, "isn't": true, "aren't": true,
	"wasn't": true,
}
