package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayBack/internal/models"
)

// stubReservationStore keeps reservations in memory and applies the same
// overlap rule as the SQL repository.
type stubReservationStore struct {
	reservations map[int]*models.Reservation
	nextID       int
	updateCalls  int
	evaluateErr  error
	avgRating    float64
}

func newStubStore() *stubReservationStore {
	return &stubReservationStore{reservations: make(map[int]*models.Reservation), nextID: 1}
}

func (s *stubReservationStore) add(res models.Reservation) models.Reservation {
	res.ID = s.nextID
	s.nextID++
	s.reservations[res.ID] = &res
	return res
}

func (s *stubReservationStore) CreateReservation(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	for _, existing := range s.reservations {
		if existing.PropertyID != res.PropertyID {
			continue
		}
		if existing.Status != models.ReservationStatusPending && existing.Status != models.ReservationStatusActive {
			continue
		}
		if models.Overlaps(res.CheckinDate, res.CheckoutDate, existing.CheckinDate, existing.CheckoutDate) {
			return models.Reservation{}, models.ErrReservationConflict
		}
	}
	res.Status = models.ReservationStatusPending
	res.CreatedAt = time.Now()
	return s.add(res), nil
}

func (s *stubReservationStore) GetReservationByID(ctx context.Context, id int) (models.Reservation, error) {
	res, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, models.ErrReservationNotFound
	}
	return *res, nil
}

func (s *stubReservationStore) UpdateStatus(ctx context.Context, id int, from []models.ReservationStatus, to models.ReservationStatus) error {
	s.updateCalls++
	res, ok := s.reservations[id]
	if !ok {
		return models.ErrReservationNotFound
	}
	for _, f := range from {
		if res.Status == f {
			res.Status = to
			return nil
		}
	}
	return models.ErrInvalidTransition
}

func (s *stubReservationStore) Evaluate(ctx context.Context, id int, rating int, comment string) (float64, error) {
	if s.evaluateErr != nil {
		return 0, s.evaluateErr
	}
	res, ok := s.reservations[id]
	if !ok {
		return 0, models.ErrReservationNotFound
	}
	if res.Evaluation {
		return 0, models.ErrAlreadyEvaluated
	}
	res.Evaluation = true
	res.Rating = &rating
	res.Comment = &comment
	return s.avgRating, nil
}

func (s *stubReservationStore) GetReservationsByPropertyID(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range s.reservations {
		if res.PropertyID == propertyID {
			out = append(out, *res)
		}
	}
	return out, nil
}

type stubNotifier struct {
	kinds []models.NotificationKind
}

func (n *stubNotifier) Notify(kind models.NotificationKind, res models.Reservation) {
	n.kinds = append(n.kinds, kind)
}

func newReservationService() (*ReservationService, *stubReservationStore, *stubNotifier) {
	store := newStubStore()
	notifier := &stubNotifier{}
	svc := &ReservationService{Store: store, Notifier: notifier}
	return svc, store, notifier
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateReservationConflict(t *testing.T) {
	svc, store, notifier := newReservationService()
	store.add(models.Reservation{
		PropertyID:   1,
		UserID:       10,
		OwnerID:      2,
		CheckinDate:  day(2026, 6, 1),
		CheckoutDate: day(2026, 6, 10),
		Status:       models.ReservationStatusPending,
	})

	_, err := svc.CreateReservation(context.Background(), 1, 11, day(2026, 6, 5), day(2026, 6, 15))
	if !errors.Is(err, models.ErrReservationConflict) {
		t.Fatalf("expected ErrReservationConflict, got %v", err)
	}
	if len(notifier.kinds) != 0 {
		t.Fatalf("expected no notifications on conflict, got %v", notifier.kinds)
	}

	created, err := svc.CreateReservation(context.Background(), 1, 11, day(2026, 6, 11), day(2026, 6, 20))
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if created.Status != models.ReservationStatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != models.NotificationReservationRequested {
		t.Fatalf("expected one requested notification, got %v", notifier.kinds)
	}
}

func TestCreateReservationReversedDates(t *testing.T) {
	svc, _, notifier := newReservationService()

	_, err := svc.CreateReservation(context.Background(), 1, 11, day(2026, 6, 10), day(2026, 6, 1))
	if !errors.Is(err, models.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	_, err = svc.CreateReservation(context.Background(), 1, 11, day(2026, 6, 1), day(2026, 6, 1))
	if !errors.Is(err, models.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for same-day range, got %v", err)
	}
	if len(notifier.kinds) != 0 {
		t.Fatalf("expected no notifications, got %v", notifier.kinds)
	}
}

func TestAcceptReservation(t *testing.T) {
	svc, store, notifier := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		CheckinDate: day(2026, 6, 1), CheckoutDate: day(2026, 6, 10),
		Status: models.ReservationStatusPending,
	})

	// A stranger cannot accept.
	_, err := svc.AcceptReservation(context.Background(), created.ID, 99)
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if store.reservations[created.ID].Status != models.ReservationStatusPending {
		t.Fatal("status must not change on unauthorized accept")
	}
	if len(notifier.kinds) != 0 {
		t.Fatalf("expected no notifications, got %v", notifier.kinds)
	}

	res, err := svc.AcceptReservation(context.Background(), created.ID, 2)
	if err != nil {
		t.Fatalf("AcceptReservation: %v", err)
	}
	if res.Status != models.ReservationStatusActive {
		t.Fatalf("expected active, got %s", res.Status)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != models.NotificationReservationAccepted {
		t.Fatalf("expected one accepted notification, got %v", notifier.kinds)
	}
}

func TestAcceptReservationIdempotent(t *testing.T) {
	svc, store, notifier := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		CheckinDate: day(2026, 6, 1), CheckoutDate: day(2026, 6, 10),
		Status: models.ReservationStatusActive,
	})

	res, err := svc.AcceptReservation(context.Background(), created.ID, 2)
	if err != nil {
		t.Fatalf("re-accept: %v", err)
	}
	if res.Status != models.ReservationStatusActive {
		t.Fatalf("expected active, got %s", res.Status)
	}
	if store.updateCalls != 0 {
		t.Fatalf("expected no status update on re-accept, got %d", store.updateCalls)
	}
	if len(notifier.kinds) != 0 {
		t.Fatalf("expected no duplicate notification, got %v", notifier.kinds)
	}
}

func TestAcceptFinishedReservation(t *testing.T) {
	svc, store, _ := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusFinished,
	})

	_, err := svc.AcceptReservation(context.Background(), created.ID, 2)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRefuseReservation(t *testing.T) {
	svc, store, notifier := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusPending,
	})

	res, err := svc.RefuseReservation(context.Background(), created.ID, 2)
	if err != nil {
		t.Fatalf("RefuseReservation: %v", err)
	}
	if res.Status != models.ReservationStatusRefused {
		t.Fatalf("expected refused, got %s", res.Status)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != models.NotificationReservationRefused {
		t.Fatalf("expected one refused notification, got %v", notifier.kinds)
	}
}

func TestCancelReservation(t *testing.T) {
	svc, store, notifier := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusActive,
	})

	// Only the requesting guest may cancel, the owner refuses instead.
	_, err := svc.CancelReservation(context.Background(), created.ID, 2)
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for owner, got %v", err)
	}

	res, err := svc.CancelReservation(context.Background(), created.ID, 10)
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if res.Status != models.ReservationStatusCanceled {
		t.Fatalf("expected canceled, got %s", res.Status)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != models.NotificationReservationCanceled {
		t.Fatalf("expected one canceled notification, got %v", notifier.kinds)
	}

	// Canceling again is a no-op with no second notification.
	res, err = svc.CancelReservation(context.Background(), created.ID, 10)
	if err != nil {
		t.Fatalf("re-cancel: %v", err)
	}
	if res.Status != models.ReservationStatusCanceled {
		t.Fatalf("expected canceled, got %s", res.Status)
	}
	if len(notifier.kinds) != 1 {
		t.Fatalf("expected one notification total, got %v", notifier.kinds)
	}
}

func TestCancelFinishedReservation(t *testing.T) {
	svc, store, _ := newReservationService()
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusFinished,
	})

	_, err := svc.CancelReservation(context.Background(), created.ID, 10)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestEvaluateReservation(t *testing.T) {
	svc, store, _ := newReservationService()
	store.avgRating = 4.25
	created := store.add(models.Reservation{
		PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusFinished,
	})

	_, err := svc.EvaluateReservation(context.Background(), created.ID, 2, 5, "great stay")
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for owner, got %v", err)
	}

	_, err = svc.EvaluateReservation(context.Background(), created.ID, 10, 6, "great stay")
	if !errors.Is(err, models.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}

	_, err = svc.EvaluateReservation(context.Background(), created.ID, 10, 5, "   ")
	if !errors.Is(err, models.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}

	res, err := svc.EvaluateReservation(context.Background(), created.ID, 10, 5, "great stay")
	if err != nil {
		t.Fatalf("EvaluateReservation: %v", err)
	}
	if !res.Evaluation || res.Rating == nil || *res.Rating != 5 {
		t.Fatalf("evaluation not recorded: %+v", res)
	}

	_, err = svc.EvaluateReservation(context.Background(), created.ID, 10, 4, "changed my mind")
	if !errors.Is(err, models.ErrAlreadyEvaluated) {
		t.Fatalf("expected ErrAlreadyEvaluated, got %v", err)
	}
	if *store.reservations[created.ID].Rating != 5 {
		t.Fatal("second evaluation must not overwrite the first")
	}
}

func TestGetReservationsByProperty(t *testing.T) {
	svc, store, _ := newReservationService()
	store.add(models.Reservation{PropertyID: 1, UserID: 10, OwnerID: 2})
	store.add(models.Reservation{PropertyID: 1, UserID: 11, OwnerID: 2})
	store.add(models.Reservation{PropertyID: 9, UserID: 12, OwnerID: 5})

	_, err := svc.GetReservationsByProperty(context.Background(), 1, 10, 2)
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for guest, got %v", err)
	}

	out, err := svc.GetReservationsByProperty(context.Background(), 1, 2, 2)
	if err != nil {
		t.Fatalf("GetReservationsByProperty: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(out))
	}
}
