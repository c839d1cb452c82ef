package dialogue

import (
	"slices"
	"testing"
)

func TestDetectCrisis(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"direct phrase", "I want to die", true},
		{"phrase inside sentence", "lately I feel completely hopeless about it", true},
		{"mixed case", "I CAN'T GO ON like this", true},
		{"worthless", "I am worthless", true},
		{"neutral", "I had a rough day at work", false},
		{"empty", "", false},
		{"near miss", "the movie plot was hopeful", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectCrisis(tc.text); got != tc.want {
				t.Errorf("DetectCrisis(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectEmotionsOrderAndPrimary(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		text string
		want []EmotionLabel
	}{
		{"single", "I am so stressed", []EmotionLabel{EmotionStress}},
		{"case insensitive", "FEELING ANXIOUS", []EmotionLabel{EmotionAnxiety}},
		{
			// Scan order decides the primary label, not word order in the text.
			"order independent of text",
			"I'm anxious and totally overwhelmed",
			[]EmotionLabel{EmotionStress, EmotionAnxiety},
		},
		{"three labels", "sad, lonely and under pressure", []EmotionLabel{EmotionStress, EmotionSadness, EmotionLoneliness}},
		{"none", "what a lovely afternoon", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DetectEmotions(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("DetectEmotions(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectStressorsOrderAndPrimary(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		text string
		want []StressorLabel
	}{
		{"exam", "my final exam is tomorrow", []StressorLabel{StressorExamAnxiety}},
		{
			"exam outranks work",
			"my job leaves no time to study for the test",
			[]StressorLabel{StressorExamAnxiety, StressorWorkStress},
		},
		{"family", "my mom and dad keep arguing", []StressorLabel{StressorFamilyStress}},
		{"depression terms", "I feel useless and empty", []StressorLabel{StressorDepressionFeelings}},
		{"none", "the weather is fine", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DetectStressors(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("DetectStressors(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectorsArePure(t *testing.T) {
	t.Parallel()
	const text = "I'm stressed about my exam and can't go on"
	e1, e2 := DetectEmotions(text), DetectEmotions(text)
	if !slices.Equal(e1, e2) {
		t.Errorf("DetectEmotions not deterministic: %v vs %v", e1, e2)
	}
	s1, s2 := DetectStressors(text), DetectStressors(text)
	if !slices.Equal(s1, s2) {
		t.Errorf("DetectStressors not deterministic: %v vs %v", s1, s2)
	}
	if !DetectCrisis(text) || !DetectCrisis(text) {
		t.Error("DetectCrisis not deterministic")
	}
}

func TestSubstringMatcherNoWordBoundary(t *testing.T) {
	t.Parallel()
	m := SubstringMatcher{}
	if !m.Match("pure madness today", "mad") {
		t.Error("substring matcher should match inside a longer word")
	}
	if m.Match("a calm day", "mad") {
		t.Error("unexpected match")
	}
}

func TestTokenMatcher(t *testing.T) {
	t.Parallel()
	m := TokenMatcher{}
	cases := []struct {
		name    string
		text    string
		keyword string
		want    bool
	}{
		{"whole word", "i am so mad right now", "mad", true},
		{"trailing punctuation", "i am mad!", "mad", true},
		{"inside longer word", "pure madness today", "mad", false},
		{"absent", "a calm day", "mad", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := m.Match(tc.text, tc.keyword); got != tc.want {
				t.Errorf("TokenMatcher.Match(%q, %q) = %v, want %v", tc.text, tc.keyword, got, tc.want)
			}
		})
	}
}

func TestPhoneticMatcher(t *testing.T) {
	t.Parallel()
	m := PhoneticMatcher{}
	cases := []struct {
		name    string
		text    string
		keyword string
		want    bool
	}{
		{"exact token", "i feel stressed", "stressed", true},
		{"transcription typo", "i feel stresed", "stressed", true},
		{"misheard anxious", "i feel anxius", "anxious", true},
		{"unrelated word", "i feel calm", "stressed", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := m.Match(tc.text, tc.keyword); got != tc.want {
				t.Errorf("PhoneticMatcher.Match(%q, %q) = %v, want %v", tc.text, tc.keyword, got, tc.want)
			}
		})
	}
}
