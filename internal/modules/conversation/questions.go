// README: Fixed question texts per slot, with a generic fallback.
package conversation

import "fmt"

// stay_duration deliberately has no mapped question and falls back to the
// generic prompt.
var questionByField = map[Field]string{
	FieldFrom:          "Please provide your departure city:",
	FieldTo:            "Please provide your destination city:",
	FieldDepartureDate: "When will you depart?",
	FieldReturnDate:    "When will you return?",
	FieldNumPeople:     "How many passengers/tickets do you need?",
	FieldAirline:       "Which airline do you prefer?",
}

// QuestionFor returns the outbound question for a pending field.
func QuestionFor(f Field) string {
	if q, ok := questionByField[f]; ok {
		return q
	}
	return fmt.Sprintf("Please provide %s", f)
}
