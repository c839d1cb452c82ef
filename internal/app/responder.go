package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/observe"
	"github.com/havenchat/haven/pkg/dialogue"
	"github.com/havenchat/haven/pkg/history"
	"github.com/havenchat/haven/pkg/sentiment"
)

// defaultWindow is the number of recent exchanges fetched per turn when the
// config leaves history.window unset. The engine itself only analyzes the
// most recent three; fetching a couple more keeps the mood endpoint cheap.
const defaultWindow = 5

// Responder owns the per-turn pipeline: read recent history, score the
// message, select a response, persist the exchange, record metrics. It is
// shared by all presentation layers and is safe for concurrent use.
type Responder struct {
	mu         sync.RWMutex
	engine     *dialogue.Engine
	scorer     sentiment.Scorer
	scorerName string
	store      history.Store
	metrics    *observe.Metrics
	window     int
}

// NewResponder wires a turn loop from its collaborators. window <= 0 selects
// the default of 5.
func NewResponder(engine *dialogue.Engine, scorer sentiment.Scorer, scorerName string, store history.Store, metrics *observe.Metrics, window int) *Responder {
	if window <= 0 {
		window = defaultWindow
	}
	return &Responder{
		engine:     engine,
		scorer:     scorer,
		scorerName: scorerName,
		store:      store,
		metrics:    metrics,
		window:     window,
	}
}

// Respond executes one turn for the session and returns the selected response
// together with the sentiment score it was selected against.
//
// A history read failure degrades to an empty window rather than failing the
// turn; a scorer failure aborts the turn (scores are never fabricated); an
// append failure is logged and does not fail the turn, since the response has
// already been selected.
func (r *Responder) Respond(ctx context.Context, sessionID, channel, message string) (dialogue.Response, float64, error) {
	start := time.Now()
	log := observe.Logger(ctx).With("session", sessionID, "channel", channel)

	recent, err := r.store.RecentExchanges(ctx, sessionID, r.window)
	if err != nil {
		r.metrics.RecordStoreError(ctx, "read")
		log.Warn("history read failed, responding without context", "err", err)
		recent = nil
	}

	score, err := r.scorer.Score(message)
	if err != nil {
		r.metrics.RecordScorerError(ctx, r.scorerName)
		return dialogue.Response{}, 0, fmt.Errorf("sentiment: score message: %w", err)
	}

	resp := r.dialogueEngine().Respond(message, score, toEngineHistory(recent))

	if err := r.store.Append(ctx, sessionID, history.Exchange{
		UserText:  message,
		BotText:   resp.Text,
		Sentiment: score,
		Category:  string(resp.Category),
	}); err != nil {
		r.metrics.RecordStoreError(ctx, "append")
		log.Error("history append failed", "err", err)
	}

	r.metrics.RecordTurn(ctx, string(resp.Category), channel, time.Since(start))
	if resp.Category == dialogue.CategoryCrisis {
		r.metrics.RecordCrisis(ctx, channel)
		log.Warn("crisis language detected")
	}

	log.LogAttrs(ctx, slog.LevelDebug, "turn completed",
		slog.String("category", string(resp.Category)),
		slog.Float64("sentiment", score),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, score, nil
}

// Strategy returns one coping-strategy text for the session, seeded by the
// primary emotion of the session's most recent user message when one is on
// record.
func (r *Responder) Strategy(ctx context.Context, sessionID string) (string, error) {
	var emotion dialogue.EmotionLabel
	engine := r.dialogueEngine()

	recent, err := r.store.RecentExchanges(ctx, sessionID, 1)
	if err != nil {
		r.metrics.RecordStoreError(ctx, "read")
		return "", fmt.Errorf("history: recent exchanges: %w", err)
	}
	if len(recent) > 0 {
		if emotions := engine.Emotions(recent[0].UserText); len(emotions) > 0 {
			emotion = emotions[0]
		}
	}

	return engine.PickStrategy(emotion), nil
}

// SetEngine rebuilds the dialogue engine from cfg and swaps it in. In-flight
// turns finish on the engine they started with. Used by config hot reload.
func (r *Responder) SetEngine(cfg config.EngineConfig) error {
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.engine = engine
	r.mu.Unlock()
	return nil
}

// dialogueEngine returns the current engine under the read lock.
func (r *Responder) dialogueEngine() *dialogue.Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engine
}

// toEngineHistory projects stored exchanges onto the engine's history type,
// preserving most-recent-first order.
func toEngineHistory(recent []history.Exchange) []dialogue.Exchange {
	if len(recent) == 0 {
		return nil
	}
	out := make([]dialogue.Exchange, len(recent))
	for i, ex := range recent {
		out[i] = dialogue.Exchange{UserText: ex.UserText, BotText: ex.BotText}
	}
	return out
}
