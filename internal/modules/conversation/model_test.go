// README: Phase transition table and slot mechanics tests.
package conversation

import (
	"testing"
)

// TestCanTransition checks every phase pair against the transition table.
func TestCanTransition(t *testing.T) {
	phases := []Phase{PhaseCollecting, PhaseAwaitingFeedback, PhaseComplete}
	allowed := map[[2]Phase]bool{
		{PhaseCollecting, PhaseCollecting}:       true, // asking another question
		{PhaseCollecting, PhaseAwaitingFeedback}: true, // finalization
		{PhaseAwaitingFeedback, PhaseComplete}:   true, // feedback stored
	}
	for _, from := range phases {
		for _, to := range phases {
			want := allowed[[2]Phase{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if CanTransition(Phase("bogus"), PhaseCollecting) {
		t.Errorf("unknown phase should have no transitions")
	}
}

// TestPendingOrder verifies the next question always targets the first absent
// field in declared order, whatever combination is absent.
func TestPendingOrder(t *testing.T) {
	madrid := "Madrid"
	paris := "Paris"
	date := "2024-06-05"
	n := 2

	cases := []struct {
		name  string
		slots Slots
		first Field
	}{
		{"empty", Slots{}, FieldFrom},
		{"from filled", Slots{From: &madrid}, FieldTo},
		{"cities filled", Slots{From: &madrid, To: &paris}, FieldDepartureDate},
		{"gap in middle", Slots{From: &madrid, To: &paris, DepartureDate: &date, StayDuration: &n, NumPeople: &n}, FieldReturnDate},
		{"only airline missing", Slots{From: &madrid, To: &paris, DepartureDate: &date, ReturnDate: &date, StayDuration: &n, NumPeople: &n}, FieldAirline},
	}
	for _, tc := range cases {
		pending := tc.slots.Pending()
		if len(pending) == 0 {
			t.Fatalf("%s: expected pending fields", tc.name)
		}
		if pending[0] != tc.first {
			t.Errorf("%s: first pending = %s, want %s", tc.name, pending[0], tc.first)
		}
	}

	full := Slots{From: &madrid, To: &paris, DepartureDate: &date, ReturnDate: &date, StayDuration: &n, NumPeople: &n, Airline: &paris}
	if got := full.Pending(); len(got) != 0 {
		t.Errorf("full record should have no pending fields, got %v", got)
	}
}

// TestMergePendingNoOverwrite verifies merging never changes an already-filled
// slot, even when the extraction carries a value for it.
func TestMergePendingNoOverwrite(t *testing.T) {
	madrid := "Madrid"
	paris := "Paris"
	rome := "Rome"

	s := Slots{From: &madrid}
	ex := Slots{From: &rome, To: &paris}

	s.MergePending(ex, []Field{FieldFrom, FieldTo})

	if *s.From != "Madrid" {
		t.Errorf("from was overwritten to %q", *s.From)
	}
	if s.To == nil || *s.To != "Paris" {
		t.Errorf("to = %v, want Paris", s.To)
	}
}

// TestMergePendingIgnoresNonPending verifies only listed fields are merged.
func TestMergePendingIgnoresNonPending(t *testing.T) {
	paris := "Paris"
	n := 4

	var s Slots
	ex := Slots{To: &paris, NumPeople: &n}
	s.MergePending(ex, []Field{FieldTo})

	if s.NumPeople != nil {
		t.Errorf("num_people merged despite not being in pending set")
	}
	if s.To == nil || *s.To != "Paris" {
		t.Errorf("to = %v, want Paris", s.To)
	}
}

func TestMergePendingCopiesValues(t *testing.T) {
	paris := "Paris"
	var s Slots
	s.MergePending(Slots{To: &paris}, []Field{FieldTo})

	paris = "mutated"
	if *s.To != "Paris" {
		t.Errorf("merged slot aliases the extraction value")
	}
}

func TestQuestionFor(t *testing.T) {
	if got := QuestionFor(FieldFrom); got != "Please provide your departure city:" {
		t.Errorf("QuestionFor(from) = %q", got)
	}
	// stay_duration has no mapped question; generic fallback applies.
	if got := QuestionFor(FieldStayDuration); got != "Please provide stay_duration" {
		t.Errorf("QuestionFor(stay_duration) = %q", got)
	}
}
