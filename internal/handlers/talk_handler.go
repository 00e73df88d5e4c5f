package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stayBack/internal/models"
	"stayBack/internal/services"
)

type TalkHandler struct {
	Service *services.TalkService
}

func talkErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrTalkNotFound), errors.Is(err, models.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotAuthorized):
		// Non-participants get 401 on talk access.
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrEmptyComment):
		return http.StatusBadRequest
	default:
		return 0
	}
}

func respondTalkError(w http.ResponseWriter, err error, op string) {
	if status := talkErrorStatus(err); status != 0 {
		http.Error(w, err.Error(), status)
		return
	}
	log.Printf("%s error: %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *TalkHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.CreateMessage(r.Context(), currentUserID(r), req)
	if err != nil {
		respondTalkError(w, err, "CreateMessage")
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *TalkHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	talkID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid talk ID", http.StatusBadRequest)
		return
	}

	messages, err := h.Service.GetMessages(r.Context(), talkID, currentUserID(r))
	if err != nil {
		respondTalkError(w, err, "GetMessages")
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *TalkHandler) GetTalks(w http.ResponseWriter, r *http.Request) {
	talks, err := h.Service.GetTalks(r.Context(), currentUserID(r))
	if err != nil {
		respondTalkError(w, err, "GetTalks")
		return
	}
	json.NewEncoder(w).Encode(talks)
}
