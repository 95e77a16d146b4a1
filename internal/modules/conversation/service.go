// README: Dialogue orchestrator; advances one conversation record per inbound turn.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skybook/internal/lang"
	"skybook/internal/sentiment"
	"skybook/internal/types"
)

var (
	ErrNotFound      = errors.New("conversation not found")
	ErrConflict      = errors.New("conversation state conflict")
	ErrInvalidState  = errors.New("invalid phase transition")
	ErrBusy          = errors.New("another turn for this user is in progress")
	ErrTranscription = errors.New("voice transcription failed")
)

// workingLanguage is the single language extraction and validation operate in.
const workingLanguage = lang.Fallback

const (
	startCommand = "/start"
	welcomeText  = "Welcome! Please provide your flight details."
	ratingPrompt = "Please rate your experience with our service."
)

var thankYouBySentiment = map[sentiment.Label]string{
	sentiment.Positive: "Thank you for your positive feedback!",
	sentiment.Negative: "We're sorry to hear that. We'll work to improve our service.",
	sentiment.Neutral:  "Thank you for your feedback!",
}

// Store is the single source of truth for cross-turn state.
type Store interface {
	FindActive(ctx context.Context, userID types.ID) (*Record, error)
	Create(ctx context.Context, userID types.ID) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// Extractor fills pending slots from already-translated text. Partial results
// are normal; it must not invent values for fields it cannot decide.
type Extractor interface {
	Extract(ctx context.Context, text string, pending []Field, known Slots) (Slots, error)
}

type Classifier interface {
	Classify(text string) sentiment.Label
}

// Translator detects the source language and moves text between it and the
// working language. Detect never fails; it falls back to the default language.
type Translator interface {
	Detect(text string) string
	Translate(ctx context.Context, text, target string) (string, error)
}

type Speech interface {
	Transcribe(ctx context.Context, fileID string) (text, language string, err error)
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

type Messenger interface {
	SendText(ctx context.Context, userID types.ID, text string) error
	SendVoice(ctx context.Context, userID types.ID, voice []byte) error
}

// Locker serializes turns per user for the duration of one record round-trip.
type Locker interface {
	Acquire(ctx context.Context, userID types.ID) (release func(), err error)
}

// CityResolver canonicalizes city names for the confirmation message.
// Optional; the orchestrator keeps the user's wording without it.
type CityResolver interface {
	Canonical(ctx context.Context, name string) (string, bool)
}

type Deps struct {
	Store       Store
	Locker      Locker
	Extractor   Extractor
	Classifier  Classifier
	Translator  Translator
	Speech      Speech
	Messenger   Messenger
	Cities      CityResolver // optional
	CheckoutURL string
}

// Service owns the per-turn state machine. It holds no conversation state
// between turns; the store is the only durable state.
type Service struct {
	store       Store
	locker      Locker
	extractor   Extractor
	classifier  Classifier
	translator  Translator
	speech      Speech
	messenger   Messenger
	cities      CityResolver
	checkoutURL string
}

func NewService(d Deps) *Service {
	return &Service{
		store:       d.Store,
		locker:      d.Locker,
		extractor:   d.Extractor,
		classifier:  d.Classifier,
		translator:  d.Translator,
		speech:      d.Speech,
		messenger:   d.Messenger,
		cities:      d.Cities,
		checkoutURL: d.CheckoutURL,
	}
}

// Turn is one normalized inbound message.
type Turn struct {
	UserID      types.ID
	Text        string
	VoiceFileID string // empty for text turns
}

func (t Turn) isVoice() bool { return t.VoiceFileID != "" }

// TurnResult reports what the turn produced, in the working language.
type TurnResult struct {
	Reply string
	Phase Phase
}

// HandleTurn advances the user's conversation by one inbound message and
// delivers the reply. The record is only persisted at explicit save points;
// a failure in between leaves the stored state untouched for the next turn.
func (s *Service) HandleTurn(ctx context.Context, turn Turn) (TurnResult, error) {
	text := strings.TrimSpace(turn.Text)

	// The start command is handled before any record lookup and never
	// touches persistence.
	if text == startCommand {
		if err := s.messenger.SendText(ctx, turn.UserID, welcomeText); err != nil {
			return TurnResult{}, err
		}
		return TurnResult{Reply: welcomeText}, nil
	}

	srcLang := workingLanguage
	if text != "" {
		srcLang = s.translator.Detect(text)
	}

	if turn.isVoice() {
		transcript, detected, err := s.speech.Transcribe(ctx, turn.VoiceFileID)
		if err != nil {
			// The user gets an explicit notice; no record is created or
			// mutated for a turn we could not understand.
			notice := fmt.Sprintf("Error transcribing voice message: %v", err)
			_ = s.messenger.SendText(ctx, turn.UserID, notice)
			return TurnResult{}, fmt.Errorf("%w: %v", ErrTranscription, err)
		}
		text, srcLang = transcript, detected
	}

	if srcLang != workingLanguage {
		translated, err := s.translator.Translate(ctx, text, workingLanguage)
		if err != nil {
			return TurnResult{}, fmt.Errorf("translate inbound text: %w", err)
		}
		text = translated
	}

	release, err := s.locker.Acquire(ctx, turn.UserID)
	if err != nil {
		return TurnResult{}, err
	}
	defer release()

	rec, err := s.store.FindActive(ctx, turn.UserID)
	if errors.Is(err, ErrNotFound) {
		rec, err = s.store.Create(ctx, turn.UserID)
	}
	if err != nil {
		return TurnResult{}, err
	}

	if rec.Phase == PhaseAwaitingFeedback {
		return s.handleFeedback(ctx, rec, turn, text, srcLang)
	}
	return s.handleCollecting(ctx, rec, turn, text, srcLang)
}

// handleFeedback consumes the one-shot satisfaction survey answer. No
// extraction logic runs on this turn.
func (s *Service) handleFeedback(ctx context.Context, rec *Record, turn Turn, text, srcLang string) (TurnResult, error) {
	if !CanTransition(rec.Phase, PhaseComplete) {
		return TurnResult{}, ErrInvalidState
	}

	label := s.classifier.Classify(text)
	rec.FeedbackSentiment = &label
	rec.FeedbackText = &text
	rec.Phase = PhaseComplete
	if err := s.store.Save(ctx, rec); err != nil {
		return TurnResult{}, err
	}

	reply := thankYouBySentiment[label]
	outbound, err := s.localize(ctx, reply, srcLang)
	if err != nil {
		return TurnResult{}, err
	}
	if err := s.messenger.SendText(ctx, turn.UserID, outbound); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Reply: reply, Phase: PhaseComplete}, nil
}

// handleCollecting runs the extraction/validation/question-selection loop and
// finalizes the booking once no field is pending.
func (s *Service) handleCollecting(ctx context.Context, rec *Record, turn Turn, text, srcLang string) (TurnResult, error) {
	pending := rec.Slots.Pending()
	if len(pending) > 0 && text != "" {
		extracted, err := s.extractor.Extract(ctx, text, pending, rec.Slots)
		if err != nil {
			return TurnResult{}, fmt.Errorf("extract fields: %w", err)
		}
		rec.Slots.MergePending(extracted, pending)
	}

	// Validation runs over the whole record: a newly filled field can
	// invalidate an earlier one, and a reset re-opens its question.
	rec.Slots = Validate(rec.Slots)
	if err := s.store.Save(ctx, rec); err != nil {
		return TurnResult{}, err
	}

	pending = rec.Slots.Pending()
	var reply string
	finalized := false
	if len(pending) > 0 {
		reply = QuestionFor(pending[0])
	} else {
		reply = s.finalizationMessage(ctx, rec.Slots)
		if !CanTransition(rec.Phase, PhaseAwaitingFeedback) {
			return TurnResult{}, ErrInvalidState
		}
		rec.Phase = PhaseAwaitingFeedback
		if err := s.store.Save(ctx, rec); err != nil {
			return TurnResult{}, err
		}
		finalized = true
	}

	outbound, err := s.localize(ctx, reply, srcLang)
	if err != nil {
		return TurnResult{}, err
	}
	if err := s.deliver(ctx, turn, outbound, srcLang); err != nil {
		return TurnResult{}, err
	}

	if finalized {
		// A voice turn gets the confirmation repeated as text so the
		// checkout link is clickable.
		if turn.isVoice() {
			if err := s.messenger.SendText(ctx, turn.UserID, outbound); err != nil {
				return TurnResult{}, err
			}
		}
		prompt, err := s.localize(ctx, ratingPrompt, srcLang)
		if err != nil {
			return TurnResult{}, err
		}
		if err := s.messenger.SendText(ctx, turn.UserID, prompt); err != nil {
			return TurnResult{}, err
		}
	}

	return TurnResult{Reply: reply, Phase: rec.Phase}, nil
}

// localize translates a working-language reply back to the source language.
func (s *Service) localize(ctx context.Context, reply, srcLang string) (string, error) {
	if srcLang == workingLanguage {
		return reply, nil
	}
	out, err := s.translator.Translate(ctx, reply, srcLang)
	if err != nil {
		return "", fmt.Errorf("translate reply: %w", err)
	}
	return out, nil
}

// deliver sends the reply in the same modality the turn arrived in.
func (s *Service) deliver(ctx context.Context, turn Turn, outbound, srcLang string) error {
	if !turn.isVoice() {
		return s.messenger.SendText(ctx, turn.UserID, outbound)
	}
	audio, err := s.speech.Synthesize(ctx, outbound, srcLang)
	if err != nil {
		return fmt.Errorf("synthesize reply: %w", err)
	}
	return s.messenger.SendVoice(ctx, turn.UserID, audio)
}

// finalizationMessage embeds the filled slots verbatim plus the checkout
// link. All referenced slots are guaranteed non-nil once nothing is pending.
func (s *Service) finalizationMessage(ctx context.Context, slots Slots) string {
	from := *slots.From
	to := *slots.To
	if s.cities != nil {
		if c, ok := s.cities.Canonical(ctx, from); ok {
			from = c
		}
		if c, ok := s.cities.Canonical(ctx, to); ok {
			to = c
		}
	}
	return fmt.Sprintf(
		"Your flight for %d passengers from %s to %s on %s during %d days has been booked. Please follow the link to complete the payment. %s",
		*slots.NumPeople, from, to, *slots.DepartureDate, *slots.StayDuration, s.checkoutURL,
	)
}
