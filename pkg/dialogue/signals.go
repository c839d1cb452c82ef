// Package dialogue implements the context-aware response-selection engine for
// Haven: keyword-based emotion/stressor/crisis detection over a single user
// message, aggregation of a short conversation window into a context record,
// and the priority-ordered decision procedure that turns both into exactly one
// templated response per turn.
//
// The engine is a pure decision layer. Sentiment scoring and history storage
// are collaborator contracts (pkg/sentiment, pkg/history) injected by the
// caller; the engine never performs I/O.
package dialogue

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// KeywordMatcher decides whether a lexicon keyword occurs in a message.
// textLower is the full message already lower-cased; keyword is a single
// lower-case lexicon entry.
type KeywordMatcher interface {
	Match(textLower, keyword string) bool
}

// SubstringMatcher is the default matcher: a keyword matches if it occurs
// anywhere in the text, without word boundaries ("mad" matches "madness").
// This mirrors the behaviour the lexicons were tuned against; the token and
// phonetic matchers trade that fidelity for fewer false positives.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(textLower, keyword string) bool {
	return strings.Contains(textLower, keyword)
}

// TokenMatcher matches a keyword only against whole, punctuation-trimmed
// tokens of the message.
type TokenMatcher struct{}

func (TokenMatcher) Match(textLower, keyword string) bool {
	for _, tok := range strings.Fields(textLower) {
		if strings.Trim(tok, ".,!?;:'\"()") == keyword {
			return true
		}
	}
	return false
}

const (
	phoneticThreshold = 0.70
	fuzzyThreshold    = 0.85
)

// PhoneticMatcher matches tokens that sound like a keyword: Double Metaphone
// code overlap filtered by Jaro-Winkler similarity, with a stricter pure
// similarity fallback. Useful when messages arrive via speech transcription.
type PhoneticMatcher struct{}

func (PhoneticMatcher) Match(textLower, keyword string) bool {
	kwPrimary, kwSecondary := matchr.DoubleMetaphone(keyword)
	for _, raw := range strings.Fields(textLower) {
		tok := strings.Trim(raw, ".,!?;:'\"()")
		if tok == "" {
			continue
		}
		if tok == keyword {
			return true
		}
		p, s := matchr.DoubleMetaphone(tok)
		overlap := (kwPrimary != "" && (p == kwPrimary || s == kwPrimary)) ||
			(kwSecondary != "" && (p == kwSecondary || s == kwSecondary))
		score := matchr.JaroWinkler(tok, keyword, false)
		if overlap && score >= phoneticThreshold {
			return true
		}
		if score >= fuzzyThreshold {
			return true
		}
	}
	return false
}

// DetectCrisis reports whether text contains any crisis phrase. Matching is
// always case-insensitive substring, regardless of the engine's configured
// keyword matcher: crisis detection must stay over-inclusive.
func DetectCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// DetectEmotions returns the emotion labels matched in text, in lexicon
// declaration order. The first element is the primary emotion. Uses the
// default substring matcher; [Engine.Emotions] honours the configured one.
func DetectEmotions(text string) []EmotionLabel {
	return detectEmotions(SubstringMatcher{}, text)
}

// DetectStressors returns the stressor labels matched in text, in lexicon
// declaration order. The first element is the primary stressor.
func DetectStressors(text string) []StressorLabel {
	return detectStressors(SubstringMatcher{}, text)
}

// Emotions is [DetectEmotions] using the engine's configured keyword matcher.
func (e *Engine) Emotions(text string) []EmotionLabel {
	return detectEmotions(e.matcher, text)
}

// Stressors is [DetectStressors] using the engine's configured keyword matcher.
func (e *Engine) Stressors(text string) []StressorLabel {
	return detectStressors(e.matcher, text)
}

func detectEmotions(m KeywordMatcher, text string) []EmotionLabel {
	lower := strings.ToLower(text)
	var detected []EmotionLabel
	for _, label := range emotionOrder {
		if matchesAny(m, lower, emotionKeywords[label]) {
			detected = append(detected, label)
		}
	}
	return detected
}

func detectStressors(m KeywordMatcher, text string) []StressorLabel {
	lower := strings.ToLower(text)
	var detected []StressorLabel
	for _, label := range stressorOrder {
		if matchesAny(m, lower, stressorKeywords[label]) {
			detected = append(detected, label)
		}
	}
	return detected
}

// matchesAny reports whether any keyword from the list matches textLower.
func matchesAny(m KeywordMatcher, textLower string, keywords []string) bool {
	for _, kw := range keywords {
		if m.Match(textLower, kw) {
			return true
		}
	}
	return false
}

// containsAny is the plain substring variant used for word lists that are not
// subject to the configurable matcher (greetings, continuation connectors).
func containsAny(textLower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(textLower, w) {
			return true
		}
	}
	return false
}
