package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from TripStatus
		to   TripStatus
		want bool
	}{
		{TripStatusDraft, TripStatusDispatched, true},
		{TripStatusDraft, TripStatusCancelled, true},
		{TripStatusDraft, TripStatusCompleted, false},
		{TripStatusDispatched, TripStatusCompleted, true},
		{TripStatusDispatched, TripStatusCancelled, true},
		{TripStatusDispatched, TripStatusDraft, false},
		{TripStatusCompleted, TripStatusDispatched, false},
		{TripStatusCompleted, TripStatusCancelled, false},
		{TripStatusCancelled, TripStatusDispatched, false},
		{TripStatusCancelled, TripStatusDraft, false},
		{TripStatus("UNKNOWN"), TripStatusDispatched, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTripStatusTerminal(t *testing.T) {
	t.Parallel()

	terminal := map[TripStatus]bool{
		TripStatusDraft:      false,
		TripStatusDispatched: false,
		TripStatusCompleted:  true,
		TripStatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestDriverLicenseExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"expired yesterday", time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), true},
		{"expires today is still valid", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"expires today earlier hour is still valid", time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC), false},
		{"expires tomorrow", time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), false},
		{"expired last year", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Driver{LicenseExpiry: tc.expiry}
			if got := d.LicenseExpired(now); got != tc.want {
				t.Errorf("LicenseExpired = %v, want %v", got, tc.want)
			}
		})
	}
}
