package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"stayBack/internal/models"
	"stayBack/internal/services"
)

type ReservationHandler struct {
	Service         *services.ReservationService
	PropertyService *services.PropertyService
}

const dateLayout = "2006-01-02"

// reservationErrorStatus maps domain errors onto HTTP status codes. Every
// taxonomy entry has its own code; unknown errors become 500 at the caller.
func reservationErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrReservationNotFound), errors.Is(err, models.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrReservationConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrAlreadyEvaluated):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidDateRange),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrEmptyComment):
		return http.StatusBadRequest
	default:
		return 0
	}
}

func respondReservationError(w http.ResponseWriter, err error, op string) {
	if status := reservationErrorStatus(err); status != 0 {
		http.Error(w, err.Error(), status)
		return
	}
	if isForeignKeyConstraintError(err) {
		http.Error(w, "Unknown property or user reference", http.StatusBadRequest)
		return
	}
	log.Printf("%s error: %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

type createReservationRequest struct {
	PropertyID   int    `json:"property_id"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	checkin, err := time.Parse(dateLayout, req.CheckinDate)
	if err != nil {
		http.Error(w, "Invalid checkin_date", http.StatusBadRequest)
		return
	}
	checkout, err := time.Parse(dateLayout, req.CheckoutDate)
	if err != nil {
		http.Error(w, "Invalid checkout_date", http.StatusBadRequest)
		return
	}

	res, err := h.Service.CreateReservation(r.Context(), req.PropertyID, currentUserID(r), checkin, checkout)
	if err != nil {
		respondReservationError(w, err, "CreateReservation")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *ReservationHandler) AcceptReservation(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.AcceptReservation, "AcceptReservation")
}

func (h *ReservationHandler) RefuseReservation(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.RefuseReservation, "RefuseReservation")
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CancelReservation, "CancelReservation")
}

func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, reservationID, actorUserID int) (models.Reservation, error), op string) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	res, err := apply(r.Context(), id, currentUserID(r))
	if err != nil {
		respondReservationError(w, err, op)
		return
	}
	json.NewEncoder(w).Encode(res)
}

type evaluationRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReservationHandler) EvaluateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.Service.EvaluateReservation(r.Context(), id, currentUserID(r), req.Rating, req.Comment)
	if err != nil {
		respondReservationError(w, err, "EvaluateReservation")
		return
	}
	json.NewEncoder(w).Encode(res)
}

// GetReservationsByProperty is the owner's view of a property's reservations.
func (h *ReservationHandler) GetReservationsByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "property_id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	property, err := h.PropertyService.GetPropertyByID(r.Context(), propertyID)
	if err != nil {
		respondReservationError(w, err, "GetReservationsByProperty")
		return
	}

	reservations, err := h.Service.GetReservationsByProperty(r.Context(), propertyID, currentUserID(r), property.UserID)
	if err != nil {
		respondReservationError(w, err, "GetReservationsByProperty")
		return
	}
	json.NewEncoder(w).Encode(reservations)
}
