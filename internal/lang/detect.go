// README: Offline language detection with a fixed fallback language.
package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Fallback is returned whenever detection cannot decide. It is also the
// working language all extraction and validation operates in.
const Fallback = "en"

// Detector identifies the ISO 639-1 code of inbound text. Detection never
// fails upward; undecidable input degrades to Fallback.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Italian,
		lingua.Portuguese,
		lingua.Dutch,
		lingua.Russian,
		lingua.Arabic,
		lingua.Hindi,
		lingua.Chinese,
		lingua.Japanese,
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Fallback
	}
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Fallback
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
