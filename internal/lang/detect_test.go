// README: Language detection tests.
package lang

import "testing"

func TestDetect(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		text string
		want string
	}{
		{"I want to fly from Madrid to Paris on June 5", "en"},
		{"Quiero volar de Madrid a París el cinco de junio", "es"},
		{"Je voudrais réserver un vol pour deux personnes", "fr"},
	}
	for _, tc := range cases {
		if got := d.Detect(tc.text); got != tc.want {
			t.Errorf("Detect(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestDetectFallback(t *testing.T) {
	d := NewDetector()
	for _, text := range []string{"", "   ", "12345"} {
		if got := d.Detect(text); got != Fallback {
			t.Errorf("Detect(%q) = %s, want fallback %s", text, got, Fallback)
		}
	}
}
