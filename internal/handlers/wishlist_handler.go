package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stayBack/internal/models"
	"stayBack/internal/services"
)

type WishlistHandler struct {
	Service *services.WishlistService
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	if _, err := h.Service.AddToWishlist(r.Context(), currentUserID(r), propertyID); err != nil {
		if errors.Is(err, models.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		log.Printf("AddToWishlist error: %v", err)
		http.Error(w, "Failed to add to wishlist", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveFromWishlist(r.Context(), currentUserID(r), propertyID); err != nil {
		if errors.Is(err, models.ErrWishlistNotFound) {
			http.Error(w, "Not on wishlist", http.StatusNotFound)
			return
		}
		log.Printf("RemoveFromWishlist error: %v", err)
		http.Error(w, "Failed to remove from wishlist", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.GetWishlistProperties(r.Context(), currentUserID(r))
	if err != nil {
		log.Printf("GetWishlist error: %v", err)
		http.Error(w, "Failed to get wishlist", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(properties)
}

func (h *WishlistHandler) IsWishlisted(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	wishlisted, err := h.Service.IsWishlisted(r.Context(), currentUserID(r), propertyID)
	if err != nil {
		log.Printf("IsWishlisted error: %v", err)
		http.Error(w, "Failed to check wishlist", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"wishlisted": wishlisted})
}
