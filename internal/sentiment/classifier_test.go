// README: Sentiment bucket boundary and smoke tests.
package sentiment

import "testing"

func TestBucketBoundaries(t *testing.T) {
	cases := []struct {
		compound float64
		want     Label
	}{
		{0.05, Positive},
		{0.049, Neutral},
		{-0.05, Negative},
		{-0.049, Neutral},
		{0, Neutral},
		{0.9, Positive},
		{-0.9, Negative},
	}
	for _, tc := range cases {
		if got := bucket(tc.compound); got != tc.want {
			t.Errorf("bucket(%v) = %s, want %s", tc.compound, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		text string
		want Label
	}{
		{"Terrible experience", Negative},
		{"I love this service, great job!", Positive},
		{"The flight departs on Tuesday", Neutral},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	const text = "Pretty good overall, a bit slow."
	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		if got := c.Classify(text); got != first {
			t.Fatalf("Classify not deterministic: %s then %s", first, got)
		}
	}
}
