package dialogue

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Category tags which top-level selection rule produced a response.
type Category string

const (
	CategoryGreeting              Category = "greeting"
	CategoryCrisis                Category = "crisis"
	CategoryAcknowledge           Category = "acknowledge_continuation"
	CategoryMultiEmotionOverwhelm Category = "multi_emotion_overwhelm"
	CategoryStressorRemedy        Category = "stressor_remedy"
	CategoryRepeatedEmotionCoping Category = "repeated_emotion_coping"
	CategoryNewEmotionEmpathy     Category = "new_emotion_empathy"
	CategorySentimentFallback     Category = "sentiment_fallback"
)

// Response is the single outcome of a turn: the rule that fired, the rendered
// text, and the labels that drove the choice (empty when not applicable).
type Response struct {
	Category Category
	Text     string
	Emotion  EmotionLabel
	Stressor StressorLabel
}

// Engine selects one response per user message. It is a pure function of
// (message, sentiment score, history window) apart from template sampling,
// which draws from an injectable random source so tests can pin the choice.
//
// Safe for concurrent use: the lexicons are read-only and the random source
// is guarded internally.
type Engine struct {
	matcher     KeywordMatcher
	crisisFirst bool

	mu   sync.Mutex
	intn func(n int) int
}

// Option configures an [Engine].
type Option func(*Engine)

// WithKeywordMatcher selects how emotion/stressor/topic keywords are matched.
// Default: [SubstringMatcher]. Crisis phrases ignore this setting.
func WithKeywordMatcher(m KeywordMatcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// WithCrisisFirst moves crisis detection ahead of the greeting rule, so that
// a message containing both a greeting word and a crisis phrase still gets
// the crisis response. The default order matches the historical behaviour
// where greetings win; see the decision record in DESIGN.md.
func WithCrisisFirst() Option {
	return func(e *Engine) { e.crisisFirst = true }
}

// WithIntN replaces the random source used for template sampling. fn must
// return a value in [0, n). Intended for tests.
func WithIntN(fn func(n int) int) Option {
	return func(e *Engine) { e.intn = fn }
}

// New returns an Engine with substring matching, greeting-first precedence,
// and the process-wide random source.
func New(opts ...Option) *Engine {
	e := &Engine{
		matcher: SubstringMatcher{},
		intn:    rand.IntN,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// intN draws from the configured random source under the guard.
func (e *Engine) intN(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intn(n)
}

// pick samples one element of list uniformly.
func (e *Engine) pick(list []string) string {
	return list[e.intN(len(list))]
}

// Respond runs the priority-ordered decision procedure over the user message,
// its sentiment score in [-1, 1], and the most-recent-first history window.
// The history must be the state *before* this turn's exchange is appended.
// Exactly one rule fires; the final sentiment rule always matches, so Respond
// never returns an empty response.
func (e *Engine) Respond(message string, score float64, history []Exchange) Response {
	ctx := e.AnalyzeContext(history)
	lower := strings.ToLower(message)

	// Rule 1/2 — greeting and crisis. Which comes first is configurable;
	// both sit above everything else.
	greeting := ctx.FirstInteraction || containsAny(lower, greetingWords)
	crisis := DetectCrisis(message)

	if e.crisisFirst && crisis {
		return Response{Category: CategoryCrisis, Text: CrisisResponse}
	}
	if greeting {
		return Response{Category: CategoryGreeting, Text: e.pick(greetingResponses)}
	}
	if crisis {
		return Response{Category: CategoryCrisis, Text: CrisisResponse}
	}

	// Rule 3 — the user is elaborating on an earlier answer.
	if containsAny(lower, continuationWords) {
		text := e.pick(acknowledgments)
		if score < -0.3 {
			text += "That sounds really challenging. How are you coping with this situation?"
		} else {
			text += "How has this been affecting your daily life?"
		}
		return Response{Category: CategoryAcknowledge, Text: text}
	}

	// Rule 4 — several distinct emotions across the recent window.
	if len(ctx.EmotionsMentioned) > 1 {
		text := "I notice you've been dealing with multiple challenges. "
		if score < -0.4 {
			text += "It's understandable to feel overwhelmed when facing several difficulties at once. What feels most pressing to you right now?"
		} else {
			text += "You're handling a lot. What's been helping you get through these tough times?"
		}
		return Response{Category: CategoryMultiEmotionOverwhelm, Text: text}
	}

	// Rule 5 — a concrete stressor gets a targeted remedy.
	if stressors := e.Stressors(message); len(stressors) > 0 {
		primary := stressors[0]
		intro, ok := remedyIntros[primary]
		if !ok {
			primary = StressorGeneralAnxiety
			intro = remedyIntros[primary]
		}
		text := intro + "\n\n" + e.pick(stressorRemedies[primary]) + "\n\n" + remedyClosings[primary]
		return Response{Category: CategoryStressorRemedy, Text: text, Stressor: primary}
	}

	// Rule 6 — emotion-based empathy, only reached with no stressor match.
	if emotions := e.Emotions(message); len(emotions) > 0 {
		primary := emotions[0]
		if ctx.EmotionsMentioned[primary] {
			text := "I notice you're still dealing with these challenging feelings. Let me suggest a coping strategy that might help:\n\n" +
				"💡 **" + e.PickStrategy(primary) + "**\n\n" +
				"How does this feel for you? Would you like to try this or explore other options?"
			return Response{Category: CategoryRepeatedEmotionCoping, Text: text, Emotion: primary}
		}
		if templates, ok := empathyResponses[primary]; ok {
			text := e.pick(templates) +
				"\n\nLet me share a coping strategy that might help:\n\n" +
				"💡 **" + e.PickStrategy(primary) + "**"
			return Response{Category: CategoryNewEmotionEmpathy, Text: text, Emotion: primary}
		}
		// Emotion detected but no dedicated empathy table (anger, loneliness).
		return Response{Category: CategoryNewEmotionEmpathy, Text: e.pick(genericResponses), Emotion: primary}
	}

	// Rule 7 — nothing detected: branch on the numeric score alone.
	return e.sentimentFallback(score, ctx)
}

// sentimentFallback is the terminal rule. Each branch pairs a lead-in with a
// follow-up question drawn from the bank, excluding kinds already asked in
// the window; when the filtered bank is empty a per-branch default question
// is substituted.
func (e *Engine) sentimentFallback(score float64, ctx ContextRecord) Response {
	var available []string
	for _, q := range followUpQuestions {
		if q.Kind != "" && ctx.QuestionsAsked[q.Kind] {
			continue
		}
		available = append(available, q.Text)
	}

	var text string
	switch {
	case score < -0.5:
		text = "I can hear that you're going through a really tough time. "
		if len(available) > 0 {
			text += e.pick(available)
		} else {
			text += "What would help you feel even a little bit better right now?"
		}
	case score < -0.1:
		text = "It sounds like things are challenging right now. "
		if len(available) > 0 {
			text += e.pick(available)
		} else {
			text += "What's one small thing that might help you today?"
		}
	case score > 0.3:
		text = "I'm glad to hear some positivity in your message! What's been going well for you lately?"
	default:
		if len(available) > 0 {
			text = e.pick(genericResponses) + " " + e.pick(available)
		} else {
			text = "I'm here to listen. What's most important for you to talk about right now?"
		}
	}
	return Response{Category: CategorySentimentFallback, Text: text}
}
