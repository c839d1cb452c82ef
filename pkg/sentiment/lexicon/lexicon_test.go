package lexicon

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()
	s := New()
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"single negative", "I feel sad", -0.6},
		{"single positive", "I am happy", 0.8},
		{"negation flips negative", "I am not sad", 0.6},
		{"negation flips positive", "I am not happy", -0.8},
		{"intensifier scales", "I am really sad", -0.84},
		{"average over matches", "sad and worried", -0.55},
		{"punctuation trimmed", "I feel sad.", -0.6},
		{"no matches", "the weather is cloudy", 0},
		{"empty", "", 0},
		{"clamped", "extremely hopeless, completely worthless", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Score(tc.text)
			if err != nil {
				t.Fatalf("Score(%q) error: %v", tc.text, err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Score(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	t.Parallel()
	s := New()
	texts := []string{
		"extremely hopeless and absolutely worthless and completely broken",
		"incredibly amazing, absolutely wonderful, extremely grateful",
	}
	for _, text := range texts {
		got, err := s.Score(text)
		if err != nil {
			t.Fatalf("Score(%q) error: %v", text, err)
		}
		if got < -1 || got > 1 {
			t.Errorf("Score(%q) = %v, outside [-1, 1]", text, got)
		}
	}
}
