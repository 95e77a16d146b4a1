// README: Validator tests (normalization, resets, totality).
package conversation

import (
	"strings"
	"testing"
)

func sp(s string) *string { return &s }
func ip(n int) *int       { return &n }

func TestValidateDateNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means reset to absent
	}{
		{"2024-06-05", "2024-06-05"},
		{"2024/06/05", "2024-06-05"},
		{"June 5, 2024", "2024-06-05"},
		{"Jun 5, 2024", "2024-06-05"},
		{"5 June 2024", "2024-06-05"},
		{" 2024-06-05 ", "2024-06-05"},
		{"soon", ""},
		{"2024-13-45", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := Validate(Slots{DepartureDate: sp(tc.in)})
		switch {
		case tc.want == "" && got.DepartureDate != nil:
			t.Errorf("Validate(departure_date=%q): want reset, got %q", tc.in, *got.DepartureDate)
		case tc.want != "" && (got.DepartureDate == nil || *got.DepartureDate != tc.want):
			t.Errorf("Validate(departure_date=%q) = %v, want %q", tc.in, got.DepartureDate, tc.want)
		}
	}
}

func TestValidateReturnBeforeDeparture(t *testing.T) {
	got := Validate(Slots{DepartureDate: sp("2024-06-10"), ReturnDate: sp("2024-06-05")})
	if got.DepartureDate == nil || *got.DepartureDate != "2024-06-10" {
		t.Errorf("departure date should survive, got %v", got.DepartureDate)
	}
	if got.ReturnDate != nil {
		t.Errorf("return date before departure should reset, got %q", *got.ReturnDate)
	}

	// Same-day return is allowed.
	got = Validate(Slots{DepartureDate: sp("2024-06-10"), ReturnDate: sp("2024-06-10")})
	if got.ReturnDate == nil {
		t.Errorf("same-day return should be kept")
	}
}

func TestValidateCounts(t *testing.T) {
	got := Validate(Slots{NumPeople: ip(0), StayDuration: ip(-3)})
	if got.NumPeople != nil {
		t.Errorf("num_people=0 should reset")
	}
	if got.StayDuration != nil {
		t.Errorf("stay_duration=-3 should reset")
	}

	got = Validate(Slots{NumPeople: ip(2), StayDuration: ip(7)})
	if got.NumPeople == nil || *got.NumPeople != 2 {
		t.Errorf("num_people=2 should survive")
	}
	if got.StayDuration == nil || *got.StayDuration != 7 {
		t.Errorf("stay_duration=7 should survive")
	}
}

func TestValidateBlankStrings(t *testing.T) {
	got := Validate(Slots{From: sp("   "), To: sp(" Paris "), Airline: sp("")})
	if got.From != nil {
		t.Errorf("whitespace-only from should reset")
	}
	if got.To == nil || *got.To != "Paris" {
		t.Errorf("to should be trimmed to Paris, got %v", got.To)
	}
	if got.Airline != nil {
		t.Errorf("empty airline should reset")
	}
}

// TestValidateTotal feeds adversarial values; the validator must return a
// well-typed record and never panic.
func TestValidateTotal(t *testing.T) {
	adversarial := []Slots{
		{},
		{From: sp(strings.Repeat("x", 1<<16))},
		{DepartureDate: sp("ñ\x00�")},
		{ReturnDate: sp("9999-99-99"), StayDuration: ip(-1 << 40)},
		{From: sp("\t\n"), To: sp("🛫"), Airline: sp("✈️ Air")},
	}
	for i, in := range adversarial {
		got := Validate(in)
		for _, d := range []*string{got.DepartureDate, got.ReturnDate} {
			if d != nil && len(*d) != len(DateLayout) {
				t.Errorf("case %d: non-canonical date %q survived", i, *d)
			}
		}
		for _, n := range []*int{got.StayDuration, got.NumPeople} {
			if n != nil && *n <= 0 {
				t.Errorf("case %d: non-positive count survived", i)
			}
		}
	}
}
