package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{
			name:   "contained range",
			aStart: date(2026, 6, 1), aEnd: date(2026, 6, 10),
			bStart: date(2026, 6, 5), bEnd: date(2026, 6, 15),
			want: true,
		},
		{
			name:   "disjoint after",
			aStart: date(2026, 6, 1), aEnd: date(2026, 6, 10),
			bStart: date(2026, 6, 11), bEnd: date(2026, 6, 20),
			want: false,
		},
		{
			name:   "touching on checkout day",
			aStart: date(2026, 6, 1), aEnd: date(2026, 6, 10),
			bStart: date(2026, 6, 10), bEnd: date(2026, 6, 12),
			want: true,
		},
		{
			name:   "identical ranges",
			aStart: date(2026, 6, 1), aEnd: date(2026, 6, 10),
			bStart: date(2026, 6, 1), bEnd: date(2026, 6, 10),
			want: true,
		},
		{
			name:   "disjoint before",
			aStart: date(2026, 6, 20), aEnd: date(2026, 6, 25),
			bStart: date(2026, 6, 1), bEnd: date(2026, 6, 19),
			want: false,
		},
	}

	for _, tt := range tests {
		if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		// Overlap is symmetric in its two ranges.
		if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
			t.Errorf("%s: reversed Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReservationStatusValid(t *testing.T) {
	valid := []ReservationStatus{
		ReservationStatusPending, ReservationStatusActive, ReservationStatusFinished,
		ReservationStatusCanceled, ReservationStatusRefused,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []ReservationStatus{"", "archived", "Pending"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestNotificationRecipient(t *testing.T) {
	res := Reservation{UserID: 7, OwnerID: 3}

	if got := NotificationReservationRequested.Recipient(res); got != 3 {
		t.Errorf("requested: recipient = %d, want owner 3", got)
	}
	if got := NotificationReservationCanceled.Recipient(res); got != 3 {
		t.Errorf("canceled: recipient = %d, want owner 3", got)
	}
	if got := NotificationReservationAccepted.Recipient(res); got != 7 {
		t.Errorf("accepted: recipient = %d, want guest 7", got)
	}
	if got := NotificationReservationRefused.Recipient(res); got != 7 {
		t.Errorf("refused: recipient = %d, want guest 7", got)
	}
}
