package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"stayBack/internal/models"
	"stayBack/internal/services"
)

type SearchHandler struct {
	Service *services.SearchService
}

// boolParam converts a true/false query parameter, leaving the filter unset
// when the parameter is absent.
func boolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value := raw != "false"
	return &value
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := models.SearchRequest{
		Query:           r.URL.Query().Get("search"),
		Wifi:            boolParam(r, "wifi"),
		WashingMachine:  boolParam(r, "washing_machine"),
		ClothesIron:     boolParam(r, "clothes_iron"),
		Towels:          boolParam(r, "towels"),
		AirConditioning: boolParam(r, "air_conditioning"),
		Refrigerator:    boolParam(r, "refrigerator"),
		Heater:          boolParam(r, "heater"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		req.Page = page
	}

	response, err := h.Service.SearchProperties(r.Context(), req)
	if errors.Is(err, models.ErrSearchUnavailable) {
		http.Error(w, "Search unavailable", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		log.Printf("Search error: %v", err)
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(response)
}

func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Autocomplete(r.Context())
	if errors.Is(err, models.ErrSearchUnavailable) {
		http.Error(w, "Search unavailable", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		log.Printf("Autocomplete error: %v", err)
		http.Error(w, "Autocomplete failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(results)
}
