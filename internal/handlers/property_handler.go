package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"stayBack/internal/models"
	"stayBack/internal/services"
	"stayBack/utils"
)

type PropertyHandler struct {
	Service *services.PropertyService
}

func propertyErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrMissingAddress),
		errors.Is(err, models.ErrMissingFacility):
		return http.StatusBadRequest
	default:
		return 0
	}
}

func respondPropertyError(w http.ResponseWriter, err error, op string) {
	if status := propertyErrorStatus(err); status != 0 {
		http.Error(w, err.Error(), status)
		return
	}
	log.Printf("%s error: %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	property.UserID = currentUserID(r)
	if property.Status == "" {
		property.Status = models.PropertyStatusPending
	}

	created, err := h.Service.CreateProperty(r.Context(), property)
	if err != nil {
		respondPropertyError(w, err, "CreateProperty")
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *PropertyHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.GetAllProperties(r.Context())
	if err != nil {
		respondPropertyError(w, err, "GetProperties")
		return
	}
	json.NewEncoder(w).Encode(properties)
}

func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}
	property, err := h.Service.GetPropertyByID(r.Context(), id)
	if err != nil {
		respondPropertyError(w, err, "GetPropertyByID")
		return
	}
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	property.ID = id

	updated, err := h.Service.UpdateProperty(r.Context(), property, currentUserID(r))
	if err != nil {
		respondPropertyError(w, err, "UpdateProperty")
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteProperty(r.Context(), id, currentUserID(r)); err != nil {
		respondPropertyError(w, err, "DeleteProperty")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *PropertyHandler) GetFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.GetFeaturedProperties(r.Context())
	if err != nil {
		respondPropertyError(w, err, "GetFeaturedProperties")
		return
	}
	json.NewEncoder(w).Encode(properties)
}

func (h *PropertyHandler) GetMyProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.GetPropertiesByUserID(r.Context(), currentUserID(r))
	if err != nil {
		respondPropertyError(w, err, "GetMyProperties")
		return
	}
	json.NewEncoder(w).Encode(properties)
}

func (h *PropertyHandler) GetTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Service.GetTrips(r.Context(), currentUserID(r))
	if err != nil {
		respondPropertyError(w, err, "GetTrips")
		return
	}
	json.NewEncoder(w).Encode(trips)
}

// UploadPhoto accepts a multipart image, stores it on S3 under a uuid name
// and records the resulting URL.
func (h *PropertyHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read photo", http.StatusBadRequest)
		return
	}

	fileName := uuid.New().String() + ".jpg"
	url, err := utils.UploadFileToS3(data, fileName, "properties")
	if err != nil {
		log.Printf("UploadPhoto error: %v", err)
		http.Error(w, "Failed to store photo", http.StatusInternalServerError)
		return
	}

	photo, err := h.Service.AddPhoto(r.Context(), models.Photo{PropertyID: propertyID, Path: url}, currentUserID(r))
	if err != nil {
		respondPropertyError(w, err, "UploadPhoto")
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(photo)
}
