package calendar

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2025-03-10":                "2025-03-10",
		" 2025-03-10 ":              "2025-03-10",
		"2025-03-10T23:30:00-03:00": "2025-03-10",
		"2025-03-10T00:15:00Z":      "2025-03-10",
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if Format(got) != want {
			t.Fatalf("ParseDate(%q) = %s, want %s", in, Format(got), want)
		}
		if got.Hour() != 0 || got.Location() != time.UTC {
			t.Fatalf("ParseDate(%q) not normalized to midnight UTC: %v", in, got)
		}
	}

	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}

func TestDayBounds(t *testing.T) {
	d := time.Date(2025, 12, 31, 17, 45, 0, 0, time.FixedZone("X", -3*3600))

	start, end := DayBounds(d)
	if Format(start) != "2025-12-31" || start.Hour() != 0 {
		t.Fatalf("unexpected start %v", start)
	}
	if Format(end) != "2026-01-01" {
		t.Fatalf("unexpected end %v", end)
	}

	// o valor de entrada não é alterado
	if d.Hour() != 17 {
		t.Fatalf("input mutated: %v", d)
	}

	start2, end2 := DayBounds(d)
	if !start.Equal(start2) || !end.Equal(end2) {
		t.Fatal("DayBounds should be deterministic")
	}
}

func TestDayOfWeek(t *testing.T) {
	sunday, _ := ParseDate("2025-03-09")
	saturday, _ := ParseDate("2025-03-15")

	if DayOfWeek(sunday) != 0 {
		t.Fatalf("expected 0 for sunday, got %d", DayOfWeek(sunday))
	}
	if DayOfWeek(saturday) != 6 {
		t.Fatalf("expected 6 for saturday, got %d", DayOfWeek(saturday))
	}
}
