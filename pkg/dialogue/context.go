package dialogue

import "strings"

// contextWindow is the number of most-recent exchanges the analyzer scans.
// Callers may hand in longer histories; anything past the window is ignored.
const contextWindow = 3

// Exchange is one past (user message, bot response) pair. Exchanges are
// immutable snapshots owned by the history store; the engine only reads them.
type Exchange struct {
	UserText string
	BotText  string
}

// ContextRecord is the per-turn summary of the recent conversation, rebuilt
// from the history window on every call. It exists to keep responses
// progressive: the selector consults it to avoid re-asking questions and to
// recognise recurring emotions.
type ContextRecord struct {
	// Topics are the life areas raised in recent user messages.
	Topics map[Topic]bool

	// QuestionsAsked are the follow-up question kinds the bot already asked.
	QuestionsAsked map[QuestionKind]bool

	// EmotionsMentioned are the emotions detected in recent user messages.
	EmotionsMentioned map[EmotionLabel]bool

	// FirstInteraction is true iff the history window was empty.
	FirstInteraction bool
}

// AnalyzeContext folds up to [contextWindow] exchanges into a ContextRecord.
// Order within the window does not matter: every entry is scanned and the
// results are deduplicated set-wise. An empty history short-circuits to a
// first-interaction record with empty sets.
func (e *Engine) AnalyzeContext(history []Exchange) ContextRecord {
	rec := ContextRecord{
		Topics:            make(map[Topic]bool),
		QuestionsAsked:    make(map[QuestionKind]bool),
		EmotionsMentioned: make(map[EmotionLabel]bool),
	}
	if len(history) == 0 {
		rec.FirstInteraction = true
		return rec
	}

	window := history
	if len(window) > contextWindow {
		window = window[:contextWindow]
	}

	for _, ex := range window {
		userLower := strings.ToLower(ex.UserText)
		for topic, keywords := range topicKeywords {
			if matchesAny(e.matcher, userLower, keywords) {
				rec.Topics[topic] = true
			}
		}
		for _, em := range detectEmotions(e.matcher, ex.UserText) {
			rec.EmotionsMentioned[em] = true
		}

		botLower := strings.ToLower(ex.BotText)
		for _, qm := range questionMarkers {
			if strings.Contains(botLower, qm.marker) {
				rec.QuestionsAsked[qm.kind] = true
			}
		}
	}
	return rec
}
