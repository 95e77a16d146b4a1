// README: Slot validator; normalizes or resets individually invalid values.
package conversation

import (
	"strings"
	"time"
)

// DateLayout is the canonical wire format for slot dates.
const DateLayout = "2006-01-02"

// Layouts accepted from the extractor before canonicalization.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// Validate checks the entire accumulated record and returns a corrected copy.
// Invalid values are reset to absent so the field re-enters the missing set;
// malformed input is data, not an error, so this never fails.
func Validate(s Slots) Slots {
	s.From = cleanText(s.From)
	s.To = cleanText(s.To)
	s.Airline = cleanText(s.Airline)
	s.DepartureDate = cleanDate(s.DepartureDate)
	s.ReturnDate = cleanDate(s.ReturnDate)
	s.StayDuration = cleanPositive(s.StayDuration)
	s.NumPeople = cleanPositive(s.NumPeople)

	// A later answer can invalidate an earlier one: a return date before the
	// departure date re-opens the return date question.
	if s.DepartureDate != nil && s.ReturnDate != nil {
		dep, depErr := time.Parse(DateLayout, *s.DepartureDate)
		ret, retErr := time.Parse(DateLayout, *s.ReturnDate)
		if depErr == nil && retErr == nil && ret.Before(dep) {
			s.ReturnDate = nil
		}
	}
	return s
}

func cleanText(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func cleanDate(v *string) *string {
	if v == nil {
		return nil
	}
	raw := strings.TrimSpace(*v)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			canon := d.Format(DateLayout)
			return &canon
		}
	}
	return nil
}

func cleanPositive(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
