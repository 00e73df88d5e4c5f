package models

import (
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusFinished ReservationStatus = "finished"
	ReservationStatusCanceled ReservationStatus = "canceled"
	ReservationStatusRefused  ReservationStatus = "refused"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusActive, ReservationStatusFinished,
		ReservationStatusCanceled, ReservationStatusRefused:
		return true
	}
	return false
}

type Reservation struct {
	ID           int               `json:"id"`
	PropertyID   int               `json:"property_id"`
	UserID       int               `json:"user_id"`
	OwnerID      int               `json:"-"`
	CheckinDate  time.Time         `json:"checkin_date"`
	CheckoutDate time.Time         `json:"checkout_date"`
	Status       ReservationStatus `json:"status"`
	Evaluation   bool              `json:"evaluation"`
	Rating       *int              `json:"rating,omitempty"`
	Comment      *string           `json:"comment,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day. Ranges that touch on the same day count as overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

type Comment struct {
	ID            int       `json:"id"`
	PropertyID    int       `json:"property_id"`
	ReservationID int       `json:"reservation_id"`
	UserID        int       `json:"user_id"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}
