package models

import "testing"

func TestRoundRating(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{3.4, 3},
		{3.5, 4},
		{4.0, 4},
		{4.6, 5},
		{5.0, 5},
	}
	for _, tt := range tests {
		p := Property{Rating: tt.rating}
		p.RoundRating()
		if p.DisplayRating != tt.want {
			t.Errorf("RoundRating(%v) = %d, want %d", tt.rating, p.DisplayRating, tt.want)
		}
	}
}

func TestPropertyStatusValid(t *testing.T) {
	for _, s := range []PropertyStatus{PropertyStatusActive, PropertyStatusPending, PropertyStatusInactive, PropertyStatusBlocked} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if PropertyStatus("deleted").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestAccommodationTypeValid(t *testing.T) {
	for _, a := range []AccommodationType{AccommodationWholeHouse, AccommodationWholeBedroom, AccommodationSharedBedroom} {
		if !a.Valid() {
			t.Errorf("expected %q to be valid", a)
		}
	}
	if AccommodationType("tent").Valid() {
		t.Error("expected unknown accommodation type to be invalid")
	}
}
