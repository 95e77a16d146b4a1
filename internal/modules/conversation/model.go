// README: Conversation record, typed slots, and phase definitions.
package conversation

import (
	"time"

	"skybook/internal/sentiment"
	"skybook/internal/types"
)

type Phase string

const (
	PhaseCollecting       Phase = "collecting"
	PhaseAwaitingFeedback Phase = "awaiting_feedback"
	PhaseComplete         Phase = "complete"
)

// AllowedTransitions represents the conversation phase flow as code.
// Collecting loops on itself while questions remain; complete is terminal.
var AllowedTransitions = map[Phase][]Phase{
	PhaseCollecting:       {PhaseCollecting, PhaseAwaitingFeedback},
	PhaseAwaitingFeedback: {PhaseComplete},
}

func CanTransition(from, to Phase) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, p := range next {
		if p == to {
			return true
		}
	}
	return false
}

// Field names one slot of the booking record.
type Field string

const (
	FieldFrom          Field = "from"
	FieldTo            Field = "to"
	FieldDepartureDate Field = "departure_date"
	FieldReturnDate    Field = "return_date"
	FieldStayDuration  Field = "stay_duration"
	FieldNumPeople     Field = "num_people"
	FieldAirline       Field = "airline"
)

// FieldOrder is the fixed declared order of the slot set. Question selection
// always targets the first pending field in this order.
var FieldOrder = []Field{
	FieldFrom,
	FieldTo,
	FieldDepartureDate,
	FieldReturnDate,
	FieldStayDuration,
	FieldNumPeople,
	FieldAirline,
}

// Slots is the accumulating booking record. A nil member means "still missing".
// The key set is closed; values only move from absent to present, except when
// the validator resets an invalid value back to absent.
type Slots struct {
	From          *string `json:"from"`
	To            *string `json:"to"`
	DepartureDate *string `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	StayDuration  *int    `json:"stay_duration"`
	NumPeople     *int    `json:"num_people"`
	Airline       *string `json:"airline"`
}

// Filled reports whether the named slot holds a value.
func (s Slots) Filled(f Field) bool {
	switch f {
	case FieldFrom:
		return s.From != nil
	case FieldTo:
		return s.To != nil
	case FieldDepartureDate:
		return s.DepartureDate != nil
	case FieldReturnDate:
		return s.ReturnDate != nil
	case FieldStayDuration:
		return s.StayDuration != nil
	case FieldNumPeople:
		return s.NumPeople != nil
	case FieldAirline:
		return s.Airline != nil
	}
	return false
}

// Pending returns the still-missing fields in declared order.
func (s Slots) Pending() []Field {
	var pending []Field
	for _, f := range FieldOrder {
		if !s.Filled(f) {
			pending = append(pending, f)
		}
	}
	return pending
}

// MergePending copies extracted values into s for the listed pending fields
// only. Already-filled slots are never overwritten, even if the extraction
// carries a value for them.
func (s *Slots) MergePending(ex Slots, pending []Field) {
	for _, f := range pending {
		if s.Filled(f) {
			continue
		}
		switch f {
		case FieldFrom:
			s.From = copyString(ex.From)
		case FieldTo:
			s.To = copyString(ex.To)
		case FieldDepartureDate:
			s.DepartureDate = copyString(ex.DepartureDate)
		case FieldReturnDate:
			s.ReturnDate = copyString(ex.ReturnDate)
		case FieldStayDuration:
			s.StayDuration = copyInt(ex.StayDuration)
		case FieldNumPeople:
			s.NumPeople = copyInt(ex.NumPeople)
		case FieldAirline:
			s.Airline = copyString(ex.Airline)
		}
	}
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// Record is one booking conversation for a user. At most one record per user
// may be in a non-terminal phase at any time.
type Record struct {
	ID                types.ID
	UserID            types.ID
	Slots             Slots
	Phase             Phase
	FeedbackSentiment *sentiment.Label
	FeedbackText      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
