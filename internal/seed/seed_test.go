package seed

import (
	"errors"
	"testing"
	"time"
)

func TestNewDataset(t *testing.T) {
	d := NewDataset(2025)

	if len(d.Barbers) != 2 {
		t.Fatalf("expected 2 barbers, got %d", len(d.Barbers))
	}
	if got := d.workingHoursCount(); got != 12 {
		t.Fatalf("expected 12 working hour rows, got %d", got)
	}
	for _, b := range d.Barbers {
		if !b.Active || b.Email == nil {
			t.Fatalf("barber %q should be active with email", b.Name)
		}
		for _, wh := range b.WorkingHours {
			want := "18:00"
			if wh.DayOfWeek == 6 {
				want = "14:00"
			}
			if wh.DayOfWeek == 0 {
				t.Fatal("sunday must not have working hours")
			}
			if wh.StartTime != "09:00" || wh.EndTime != want {
				t.Fatalf("day %d: got %s-%s", wh.DayOfWeek, wh.StartTime, wh.EndTime)
			}
		}
	}

	durations := []int{30, 45, 20, 60, 30}
	prices := []float64{5000, 7500, 3500, 9000, 4000}
	if len(d.Services) != len(durations) {
		t.Fatalf("expected %d services, got %d", len(durations), len(d.Services))
	}
	for i, s := range d.Services {
		if s.DurationMin != durations[i] || s.Price != prices[i] || !s.Active {
			t.Fatalf("service %d: %+v", i, s)
		}
	}

	if len(d.Settings) != 8 {
		t.Fatalf("expected 8 settings, got %d", len(d.Settings))
	}
	found := false
	for _, s := range d.Settings {
		if s.Key == "slot_interval" && s.Value == "30" {
			found = true
		}
	}
	if !found {
		t.Fatal("slot_interval setting missing")
	}

	if len(d.NonWorkingDays) != 6 {
		t.Fatalf("expected 6 holidays, got %d", len(d.NonWorkingDays))
	}
	last := d.NonWorkingDays[len(d.NonWorkingDays)-1]
	if !last.Date.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last holiday should be next new year, got %s", last.Date)
	}
	for _, h := range d.NonWorkingDays {
		if h.BarberID != nil {
			t.Fatal("holidays must be global")
		}
	}
}

func TestCountsInitialized(t *testing.T) {
	if (Counts{}).Initialized() {
		t.Fatal("empty store is not initialized")
	}
	if (Counts{Appointments: 3, WorkingHours: 2}).Initialized() {
		t.Fatal("only barbers, services or settings mark the store as initialized")
	}
	if !(Counts{Settings: 1}).Initialized() {
		t.Fatal("a setting marks the store as initialized")
	}
}

func TestCheckSecret(t *testing.T) {
	if err := NewSeeder(nil, "", nil).CheckSecret("x"); !errors.Is(err, ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}

	s := NewSeeder(nil, "abc", nil)
	if err := s.CheckSecret("abd"); !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
	if err := s.CheckSecret(""); !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret for empty secret, got %v", err)
	}
	if err := s.CheckSecret("abc"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
}
