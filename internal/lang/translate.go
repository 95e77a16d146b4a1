// README: Google Translate client; normalizes all turns to the working language.
package lang

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// GoogleTranslator translates text via the Translation API and delegates
// language detection to the local Detector.
type GoogleTranslator struct {
	svc      *translate.Service
	detector *Detector
}

func NewGoogleTranslator(ctx context.Context, apiKey string, detector *Detector) (*GoogleTranslator, error) {
	svc, err := translate.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &GoogleTranslator{svc: svc, detector: detector}, nil
}

func (t *GoogleTranslator) Detect(text string) string {
	return t.detector.Detect(text)
}

// Translate renders text into the target ISO 639-1 language.
func (t *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	resp, err := t.svc.Translations.List([]string{text}, target).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("translate api: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("translate api: empty response")
	}
	return resp.Translations[0].TranslatedText, nil
}
