package web

import (
	"math"
	"testing"
	"time"

	"github.com/havenchat/haven/pkg/history"
)

func pointsFromScores(scores ...float64) []history.MoodPoint {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	out := make([]history.MoodPoint, len(scores))
	for i, s := range scores {
		out[i] = history.MoodPoint{Timestamp: base.Add(time.Duration(i) * time.Minute), Score: s}
	}
	return out
}

func TestAverageScore(t *testing.T) {
	t.Parallel()
	if got := averageScore(nil); got != 0 {
		t.Errorf("average of no points = %v, want 0", got)
	}
	got := averageScore(pointsFromScores(-0.5, 0.5, 0.3))
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("average = %v, want 0.1", got)
	}
}

func TestTrendDirection(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"empty", nil, "stable"},
		{"single point", []float64{-0.5}, "stable"},
		{"improving", []float64{-0.8, -0.6, 0.2, 0.4}, "improving"},
		{"declining", []float64{0.4, 0.2, -0.6, -0.8}, "declining"},
		{"flat", []float64{0.1, 0.1, 0.1, 0.1}, "stable"},
		{"noise inside band", []float64{0.0, 0.05, 0.05, 0.1}, "stable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := trendDirection(pointsFromScores(tc.scores...)); got != tc.want {
				t.Errorf("trendDirection(%v) = %q, want %q", tc.scores, got, tc.want)
			}
		})
	}
}
