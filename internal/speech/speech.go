// README: Voice transcription and speech synthesis via Google Speech APIs.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	speechapi "google.golang.org/api/speech/v1"
	ttsapi "google.golang.org/api/texttospeech/v1"

	"skybook/internal/lang"
)

// Downloader fetches the raw audio for a messaging-platform voice reference.
type Downloader interface {
	DownloadVoice(ctx context.Context, fileID string) ([]byte, error)
}

// Service transcribes inbound voice notes and synthesizes outbound replies.
// Telegram voice notes are OGG/Opus at 48kHz; replies are produced in the
// same container so they render as voice messages, not file attachments.
type Service struct {
	speech *speechapi.Service
	tts    *ttsapi.Service
	files  Downloader
}

func NewService(ctx context.Context, apiKey string, files Downloader) (*Service, error) {
	sp, err := speechapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	tts, err := ttsapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create tts client: %w", err)
	}
	return &Service{speech: sp, tts: tts, files: files}, nil
}

// Transcribe downloads and transcribes a voice note, returning the text and
// the ISO 639-1 language the recognizer settled on.
func (s *Service) Transcribe(ctx context.Context, fileID string) (string, string, error) {
	audio, err := s.files.DownloadVoice(ctx, fileID)
	if err != nil {
		return "", "", fmt.Errorf("download voice file: %w", err)
	}

	req := &speechapi.RecognizeRequest{
		Config: &speechapi.RecognitionConfig{
			Encoding:        "OGG_OPUS",
			SampleRateHertz: 48000,
			LanguageCode:    "en-US",
			AlternativeLanguageCodes: []string{
				"es-ES", "fr-FR", "de-DE", "it-IT", "pt-PT", "ru-RU",
			},
		},
		Audio: &speechapi.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}
	resp, err := s.speech.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("speech api: %w", err)
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", "", fmt.Errorf("speech api: no transcription produced")
	}

	var b strings.Builder
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(r.Alternatives[0].Transcript)
	}
	return b.String(), shortLang(resp.Results[0].LanguageCode), nil
}

// Synthesize renders text as an OGG/Opus audio blob in the given language.
func (s *Service) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	req := &ttsapi.SynthesizeSpeechRequest{
		Input: &ttsapi.SynthesisInput{Text: text},
		Voice: &ttsapi.VoiceSelectionParams{LanguageCode: voiceLanguage(language)},
		AudioConfig: &ttsapi.AudioConfig{
			AudioEncoding: "OGG_OPUS",
		},
	}
	resp, err := s.tts.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("tts api: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("tts api: decode audio: %w", err)
	}
	return audio, nil
}

// shortLang reduces a BCP-47 tag ("en-US") to its ISO 639-1 code ("en").
func shortLang(code string) string {
	if code == "" {
		return lang.Fallback
	}
	return strings.ToLower(strings.SplitN(code, "-", 2)[0])
}

var voiceLanguages = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"it": "it-IT",
	"pt": "pt-PT",
	"ru": "ru-RU",
}

func voiceLanguage(code string) string {
	if v, ok := voiceLanguages[code]; ok {
		return v
	}
	return voiceLanguages[lang.Fallback]
}
