package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/havenchat/haven/internal/observe"
	"github.com/havenchat/haven/pkg/dialogue"
	"github.com/havenchat/haven/pkg/history"
	"github.com/havenchat/haven/pkg/history/memstore"
)

// stubResponder returns canned results for handler tests.
type stubResponder struct {
	resp     dialogue.Response
	score    float64
	strategy string
	err      error
}

func (s *stubResponder) Respond(context.Context, string, string, string) (dialogue.Response, float64, error) {
	if s.err != nil {
		return dialogue.Response{}, 0, s.err
	}
	return s.resp, s.score, nil
}

func (s *stubResponder) Strategy(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.strategy, nil
}

func newTestServer(t *testing.T, r Responder, store history.Store) *Server {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return NewServer(":0", r, store, m)
}

func TestHandleChat(t *testing.T) {
	t.Parallel()
	stub := &stubResponder{
		resp: dialogue.Response{
			Category: dialogue.CategoryGreeting,
			Text:     "Hello! I'm here to support you. How are you feeling today?",
		},
		score: 0.2,
	}
	srv := newTestServer(t, stub, memstore.New())

	body := `{"session_id":"s1","message":"hi"}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	var got chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Reply != stub.resp.Text {
		t.Errorf("reply = %q, want %q", got.Reply, stub.resp.Text)
	}
	if got.Category != string(dialogue.CategoryGreeting) {
		t.Errorf("category = %q, want greeting", got.Category)
	}
	if got.Sentiment != 0.2 {
		t.Errorf("sentiment = %v, want 0.2", got.Sentiment)
	}
}

func TestHandleChatValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{}, memstore.New())
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing session", `{"message":"hi"}`},
		{"missing message", `{"session_id":"s1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleChatResponderError(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{err: errors.New("scorer down")}, memstore.New())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"session_id":"s1","message":"hi"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleStrategy(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{strategy: "Focus on your breath."}, memstore.New())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/strategy",
		strings.NewReader(`{"session_id":"s1"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["strategy"] != "Focus on your breath." {
		t.Errorf("strategy = %q", got["strategy"])
	}
}

func TestHandleMood(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()
	for _, score := range []float64{-0.8, -0.4, 0.2, 0.6} {
		if err := store.Append(ctx, "s1", history.Exchange{UserText: "x", Sentiment: score}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	srv := newTestServer(t, &stubResponder{}, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mood?session_id=s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got moodResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Points) != 4 {
		t.Errorf("points = %d, want 4", len(got.Points))
	}
	if got.Direction != "improving" {
		t.Errorf("direction = %q, want improving", got.Direction)
	}
}

func TestHandleMoodRequiresSession(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{}, memstore.New())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mood", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()
	for range 3 {
		if err := store.Append(ctx, "s1", history.Exchange{UserText: "x"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	srv := newTestServer(t, &stubResponder{}, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats?session_id=s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["exchanges"] != 3 {
		t.Errorf("exchanges = %d, want 3", got["exchanges"])
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{}, memstore.New())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleReady(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, &stubResponder{}, memstore.New())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
