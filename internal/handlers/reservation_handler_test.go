package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayBack/internal/models"
	"stayBack/internal/services"
)

func TestReservationErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrReservationNotFound, http.StatusNotFound},
		{models.ErrPropertyNotFound, http.StatusNotFound},
		{models.ErrNotAuthorized, http.StatusForbidden},
		{models.ErrReservationConflict, http.StatusConflict},
		{models.ErrAlreadyEvaluated, http.StatusConflict},
		{models.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{models.ErrInvalidDateRange, http.StatusBadRequest},
		{models.ErrInvalidRating, http.StatusBadRequest},
		{models.ErrEmptyComment, http.StatusBadRequest},
		{errors.New("boom"), 0},
	}
	for _, tt := range tests {
		if got := reservationErrorStatus(tt.err); got != tt.want {
			t.Errorf("reservationErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// fixedReservationStore serves a single reservation and records transitions.
type fixedReservationStore struct {
	res       models.Reservation
	createErr error
}

func (s *fixedReservationStore) CreateReservation(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	if s.createErr != nil {
		return models.Reservation{}, s.createErr
	}
	res.ID = 1
	res.OwnerID = s.res.OwnerID
	return res, nil
}

func (s *fixedReservationStore) GetReservationByID(ctx context.Context, id int) (models.Reservation, error) {
	if id != s.res.ID {
		return models.Reservation{}, models.ErrReservationNotFound
	}
	return s.res, nil
}

func (s *fixedReservationStore) UpdateStatus(ctx context.Context, id int, from []models.ReservationStatus, to models.ReservationStatus) error {
	s.res.Status = to
	return nil
}

func (s *fixedReservationStore) Evaluate(ctx context.Context, id int, rating int, comment string) (float64, error) {
	return float64(rating), nil
}

func (s *fixedReservationStore) GetReservationsByPropertyID(ctx context.Context, propertyID int) ([]models.Reservation, error) {
	return []models.Reservation{s.res}, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(kind models.NotificationKind, res models.Reservation) {}

func newHandler(store services.ReservationStore) *ReservationHandler {
	return &ReservationHandler{
		Service: &services.ReservationService{Store: store, Notifier: noopNotifier{}},
	}
}

// authedRequest mimics the JWT middleware, which puts the user id into the
// request context, and the pat router, which exposes path params as :name
// query values.
func authedRequest(method, target string, body string, userID int) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(context.WithValue(r.Context(), "user_id", userID))
}

func TestCreateReservationHandler(t *testing.T) {
	handler := newHandler(&fixedReservationStore{res: models.Reservation{OwnerID: 2}})

	body := `{"property_id":1,"checkin_date":"2026-06-01","checkout_date":"2026-06-10"}`
	w := httptest.NewRecorder()
	handler.CreateReservation(w, authedRequest(http.MethodPost, "/reservations", body, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	badDates := `{"property_id":1,"checkin_date":"June 1","checkout_date":"2026-06-10"}`
	handler.CreateReservation(w, authedRequest(http.MethodPost, "/reservations", badDates, 10))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}

func TestCreateReservationHandlerConflict(t *testing.T) {
	handler := newHandler(&fixedReservationStore{createErr: models.ErrReservationConflict})

	body := `{"property_id":1,"checkin_date":"2026-06-01","checkout_date":"2026-06-10"}`
	w := httptest.NewRecorder()
	handler.CreateReservation(w, authedRequest(http.MethodPost, "/reservations", body, 10))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAcceptReservationHandler(t *testing.T) {
	store := &fixedReservationStore{res: models.Reservation{
		ID: 1, PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusPending,
	}}
	handler := newHandler(store)

	// Wrong actor gets 403.
	w := httptest.NewRecorder()
	handler.AcceptReservation(w, authedRequest(http.MethodPut, "/reservations/accept?:id=1", "", 10))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.AcceptReservation(w, authedRequest(http.MethodPut, "/reservations/accept?:id=1", "", 2))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.res.Status != models.ReservationStatusActive {
		t.Fatalf("expected active, got %s", store.res.Status)
	}

	w = httptest.NewRecorder()
	handler.AcceptReservation(w, authedRequest(http.MethodPut, "/reservations/accept?:id=abc", "", 2))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestCancelFinishedReservationHandler(t *testing.T) {
	handler := newHandler(&fixedReservationStore{res: models.Reservation{
		ID: 1, PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusFinished,
	}})

	w := httptest.NewRecorder()
	handler.CancelReservation(w, authedRequest(http.MethodPut, "/reservations/cancel?:id=1", "", 10))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestEvaluateReservationHandler(t *testing.T) {
	handler := newHandler(&fixedReservationStore{res: models.Reservation{
		ID: 1, PropertyID: 1, UserID: 10, OwnerID: 2,
		Status: models.ReservationStatusFinished,
	}})

	w := httptest.NewRecorder()
	handler.EvaluateReservation(w, authedRequest(http.MethodPost, "/reservations/evaluation?:id=1", `{"rating":5,"comment":"great"}`, 10))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.EvaluateReservation(w, authedRequest(http.MethodPost, "/reservations/evaluation?:id=1", `{"rating":5,"comment":"  "}`, 10))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank comment, got %d", w.Code)
	}
}
