// README: Gemini-backed slot extractor (JSON mode, deterministic settings).
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"skybook/internal/modules/conversation"
)

const geminiModel = "gemini-2.0-flash"

// Compile-time interface check.
var _ conversation.Extractor = (*GeminiExtractor)(nil)

// GeminiExtractor fills pending booking slots from free text using Gemini.
// Temperature 0 and JSON response mode keep identical inputs producing
// identical outputs, which the merge step relies on under retries.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	now    func() time.Time
}

func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)

	return &GeminiExtractor{client: client, model: model, now: time.Now}, nil
}

// Close cleans up the Gemini client resources.
func (e *GeminiExtractor) Close() {
	e.client.Close()
}

// Extract attempts to fill only the listed pending fields from text. Fields
// the model is not confident about come back absent; that is a normal partial
// result, not an error.
func (e *GeminiExtractor) Extract(ctx context.Context, text string, pending []conversation.Field, known conversation.Slots) (conversation.Slots, error) {
	prompt := buildPrompt(text, pending, known, e.now())

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return conversation.Slots{}, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return conversation.Slots{}, fmt.Errorf("gemini: no response candidates")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	var ex extraction
	if err := json.Unmarshal([]byte(cleanJSONString(responseText.String())), &ex); err != nil {
		return conversation.Slots{}, fmt.Errorf("gemini: parse JSON response: %w", err)
	}
	return ex.toSlots(pending), nil
}

// extraction mirrors the slot set; every member is optional because partial
// extraction is the expected case.
type extraction struct {
	From          *string `json:"from"`
	To            *string `json:"to"`
	DepartureDate *string `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	StayDuration  *int    `json:"stay_duration"`
	NumPeople     *int    `json:"num_people"`
	Airline       *string `json:"airline"`
}

// toSlots keeps only values for fields that were actually pending. The model
// is instructed not to answer for other fields, but the contract is enforced
// here rather than trusted.
func (ex extraction) toSlots(pending []conversation.Field) conversation.Slots {
	var s conversation.Slots
	for _, f := range pending {
		switch f {
		case conversation.FieldFrom:
			s.From = ex.From
		case conversation.FieldTo:
			s.To = ex.To
		case conversation.FieldDepartureDate:
			s.DepartureDate = ex.DepartureDate
		case conversation.FieldReturnDate:
			s.ReturnDate = ex.ReturnDate
		case conversation.FieldStayDuration:
			s.StayDuration = ex.StayDuration
		case conversation.FieldNumPeople:
			s.NumPeople = ex.NumPeople
		case conversation.FieldAirline:
			s.Airline = ex.Airline
		}
	}
	return s
}

var fieldDescriptions = map[conversation.Field]string{
	conversation.FieldFrom:          "departure city",
	conversation.FieldTo:            "destination city",
	conversation.FieldDepartureDate: "departure date, format YYYY-MM-DD",
	conversation.FieldReturnDate:    "return date, format YYYY-MM-DD",
	conversation.FieldStayDuration:  "stay duration in whole days, integer",
	conversation.FieldNumPeople:     "number of passengers, integer",
	conversation.FieldAirline:       "preferred airline name",
}

func buildPrompt(text string, pending []conversation.Field, known conversation.Slots, now time.Time) string {
	var fields strings.Builder
	for _, f := range pending {
		fmt.Fprintf(&fields, "- %q: %s\n", string(f), fieldDescriptions[f])
	}
	knownJSON, _ := json.Marshal(known)

	return fmt.Sprintf(`Role: You are the field extractor for a flight booking assistant.
Today's date: %s

The booking record so far (null = still unknown):
%s

TASK: Extract values for ONLY these still-missing fields from the user message:
%s
RULES:
1. Output a single JSON object whose keys are exactly the field names listed above.
2. If the message does not clearly state a field's value, output null for it. Never guess.
3. Do NOT output keys for fields that are not listed above, even if the message mentions them.
4. Dates must be absolute, format YYYY-MM-DD. Resolve relative dates ("next Friday") against today's date. A date without a year means the next future occurrence.
5. "stay_duration" and "num_people" must be JSON integers, not strings.
6. City names as the user gave them; do not translate or expand them.

User Message: %s`,
		now.Format("2006-01-02"), string(knownJSON), fields.String(), text)
}

// cleanJSONString removes markdown code fences if the model added them anyway.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
