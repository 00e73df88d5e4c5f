package services

import (
	"context"
	"log"
	"strings"
	"time"

	"stayBack/internal/models"
)

// ReservationStore is the persistence surface the reservation rules run
// against. The SQL repository implements it; tests stub it.
type ReservationStore interface {
	CreateReservation(ctx context.Context, res models.Reservation) (models.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (models.Reservation, error)
	UpdateStatus(ctx context.Context, id int, from []models.ReservationStatus, to models.ReservationStatus) error
	Evaluate(ctx context.Context, id int, rating int, comment string) (float64, error)
	GetReservationsByPropertyID(ctx context.Context, propertyID int) ([]models.Reservation, error)
}

// Notifier delivers reservation notifications. Implementations must not
// block: the transition has already committed when Notify is called, and a
// delivery failure never propagates to the caller.
type Notifier interface {
	Notify(kind models.NotificationKind, res models.Reservation)
}

type ReservationService struct {
	Store    ReservationStore
	Notifier Notifier
	ErrorLog *log.Logger
}

// CreateReservation requests a stay for [checkin, checkout]. The store
// rejects ranges overlapping a pending or active reservation of the same
// property; on success the owner is notified of the new request.
func (s *ReservationService) CreateReservation(ctx context.Context, propertyID, userID int, checkin, checkout time.Time) (models.Reservation, error) {
	if !checkin.Before(checkout) {
		return models.Reservation{}, models.ErrInvalidDateRange
	}

	created, err := s.Store.CreateReservation(ctx, models.Reservation{
		PropertyID:   propertyID,
		UserID:       userID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Status:       models.ReservationStatusPending,
	})
	if err != nil {
		return models.Reservation{}, err
	}

	s.Notifier.Notify(models.NotificationReservationRequested, created)
	return created, nil
}

// AcceptReservation lets the property owner move a pending reservation to
// active. Accepting an already-active reservation is a no-op and sends no
// second notification.
func (s *ReservationService) AcceptReservation(ctx context.Context, reservationID, actorUserID int) (models.Reservation, error) {
	return s.ownerTransition(ctx, reservationID, actorUserID,
		models.ReservationStatusActive, models.NotificationReservationAccepted)
}

// RefuseReservation lets the property owner refuse a pending reservation.
func (s *ReservationService) RefuseReservation(ctx context.Context, reservationID, actorUserID int) (models.Reservation, error) {
	return s.ownerTransition(ctx, reservationID, actorUserID,
		models.ReservationStatusRefused, models.NotificationReservationRefused)
}

func (s *ReservationService) ownerTransition(ctx context.Context, reservationID, actorUserID int, to models.ReservationStatus, kind models.NotificationKind) (models.Reservation, error) {
	res, err := s.Store.GetReservationByID(ctx, reservationID)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.OwnerID != actorUserID {
		return models.Reservation{}, models.ErrNotAuthorized
	}
	if res.Status == to {
		// Already applied by this owner; idempotent re-application.
		return res, nil
	}
	if res.Status != models.ReservationStatusPending {
		return models.Reservation{}, models.ErrInvalidTransition
	}

	err = s.Store.UpdateStatus(ctx, reservationID,
		[]models.ReservationStatus{models.ReservationStatusPending}, to)
	if err != nil {
		return models.Reservation{}, err
	}

	res.Status = to
	s.Notifier.Notify(kind, res)
	return res, nil
}

// CancelReservation lets the requesting user cancel a pending or active
// reservation; the owner is notified. Canceling an already-canceled
// reservation is a no-op.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID, actorUserID int) (models.Reservation, error) {
	res, err := s.Store.GetReservationByID(ctx, reservationID)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.UserID != actorUserID {
		return models.Reservation{}, models.ErrNotAuthorized
	}
	if res.Status == models.ReservationStatusCanceled {
		return res, nil
	}
	if res.Status != models.ReservationStatusPending && res.Status != models.ReservationStatusActive {
		return models.Reservation{}, models.ErrInvalidTransition
	}

	err = s.Store.UpdateStatus(ctx, reservationID,
		[]models.ReservationStatus{models.ReservationStatusPending, models.ReservationStatusActive},
		models.ReservationStatusCanceled)
	if err != nil {
		return models.Reservation{}, err
	}

	res.Status = models.ReservationStatusCanceled
	s.Notifier.Notify(models.NotificationReservationCanceled, res)
	return res, nil
}

// EvaluateReservation records the guest's one-time rating and comment and
// refreshes the property aggregate. Only the requesting user may evaluate,
// and only once.
func (s *ReservationService) EvaluateReservation(ctx context.Context, reservationID, actorUserID int, rating int, comment string) (models.Reservation, error) {
	res, err := s.Store.GetReservationByID(ctx, reservationID)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.UserID != actorUserID {
		return models.Reservation{}, models.ErrNotAuthorized
	}
	if res.Evaluation {
		return models.Reservation{}, models.ErrAlreadyEvaluated
	}
	if rating < 0 || rating > 5 {
		return models.Reservation{}, models.ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return models.Reservation{}, models.ErrEmptyComment
	}

	if _, err := s.Store.Evaluate(ctx, reservationID, rating, comment); err != nil {
		return models.Reservation{}, err
	}

	res.Evaluation = true
	res.Rating = &rating
	res.Comment = &comment
	return res, nil
}

// GetReservationsByProperty returns the reservations of a property. Owner
// view only: other actors get an authorization error.
func (s *ReservationService) GetReservationsByProperty(ctx context.Context, propertyID, actorUserID, propertyOwnerID int) ([]models.Reservation, error) {
	if propertyOwnerID != actorUserID {
		return nil, models.ErrNotAuthorized
	}
	return s.Store.GetReservationsByPropertyID(ctx, propertyID)
}
