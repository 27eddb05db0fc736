package order

import (
	"testing"
	"time"
)

func TestEvaluateRemorse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		want      Remorse
	}{
		{
			name:      "fresh order",
			createdAt: now,
			want:      Remorse{InRemorsePeriod: true, MinutesLeft: 45, CanSelfCancel: true},
		},
		{
			name:      "ten minutes in",
			createdAt: now.Add(-10 * time.Minute),
			want:      Remorse{InRemorsePeriod: true, MinutesLeft: 35, CanSelfCancel: true},
		},
		{
			name:      "exactly at the boundary",
			createdAt: now.Add(-45 * time.Minute),
			want:      Remorse{InRemorsePeriod: false, MinutesLeft: 0, CanSelfCancel: false},
		},
		{
			name:      "long expired",
			createdAt: now.Add(-2 * time.Hour),
			want:      Remorse{InRemorsePeriod: false, MinutesLeft: 0, CanSelfCancel: false},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := EvaluateRemorse(tc.createdAt, now)
			if got != tc.want {
				t.Fatalf("EvaluateRemorse = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCanReturn(t *testing.T) {
	t.Parallel()

	eligible := []Status{StatusShipped, StatusDelivered}
	for _, st := range eligible {
		if !CanReturn(st) {
			t.Fatalf("CanReturn(%s) = false, want true", st)
		}
	}

	ineligible := []Status{StatusProcessing, StatusCancelled, StatusReturnInitiated}
	for _, st := range ineligible {
		if CanReturn(st) {
			t.Fatalf("CanReturn(%s) = true, want false", st)
		}
	}
}
