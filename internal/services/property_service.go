package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stayBack/internal/models"
	"stayBack/internal/repositories"
	"stayBack/internal/search"
)

const (
	featuredCacheKey = "properties:featured"
	featuredCacheTTL = 5 * time.Minute
	featuredCount    = 3
)

type PropertyService struct {
	PropertyRepo *repositories.PropertyRepository
	Search       *search.Client
	RDB          *redis.Client
	ErrorLog     *log.Logger
}

func validateProperty(p models.Property) error {
	if !p.Status.Valid() {
		return models.ErrInvalidStatus
	}
	if !p.AccommodationType.Valid() {
		return models.ErrInvalidStatus
	}
	if strings.TrimSpace(p.Address.Country) == "" || strings.TrimSpace(p.Address.City) == "" {
		return models.ErrMissingAddress
	}
	return nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	if err := validateProperty(p); err != nil {
		return models.Property{}, err
	}

	created, err := s.PropertyRepo.CreateProperty(ctx, p)
	if err != nil {
		return models.Property{}, err
	}

	s.index(created)
	return created, nil
}

func (s *PropertyService) GetPropertyByID(ctx context.Context, id int) (models.Property, error) {
	return s.PropertyRepo.GetPropertyByID(ctx, id)
}

func (s *PropertyService) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	return s.PropertyRepo.GetAllProperties(ctx)
}

func (s *PropertyService) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	return s.PropertyRepo.GetPropertiesByUserID(ctx, userID)
}

// UpdateProperty applies an owner's changes. Only the owner may update; the
// aggregate rating is never writable through this path.
func (s *PropertyService) UpdateProperty(ctx context.Context, p models.Property, actorUserID int) (models.Property, error) {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, p.ID)
	if err != nil {
		return models.Property{}, err
	}
	if existing.UserID != actorUserID {
		return models.Property{}, models.ErrNotAuthorized
	}
	if err := validateProperty(p); err != nil {
		return models.Property{}, err
	}

	if err := s.PropertyRepo.UpdateProperty(ctx, p); err != nil {
		return models.Property{}, err
	}

	updated, err := s.PropertyRepo.GetPropertyByID(ctx, p.ID)
	if err != nil {
		return models.Property{}, err
	}
	s.index(updated)
	return updated, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, id, actorUserID int) error {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actorUserID {
		return models.ErrNotAuthorized
	}

	if err := s.PropertyRepo.DeleteProperty(ctx, id); err != nil {
		return err
	}

	if s.Search != nil {
		if err := s.Search.DeleteProperty(ctx, id); err != nil {
			s.ErrorLog.Printf("search: delete property %d: %v", id, err)
		}
	}
	return nil
}

// GetFeaturedProperties serves the featured selection from Redis when fresh,
// falling back to the randomized query.
func (s *PropertyService) GetFeaturedProperties(ctx context.Context) ([]models.Property, error) {
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, featuredCacheKey).Bytes()
		if err == nil {
			var properties []models.Property
			if err := json.Unmarshal(cached, &properties); err == nil {
				return properties, nil
			}
		} else if err != redis.Nil {
			s.ErrorLog.Printf("redis: get featured: %v", err)
		}
	}

	properties, err := s.PropertyRepo.GetFeaturedProperties(ctx, featuredCount)
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if payload, err := json.Marshal(properties); err == nil {
			if err := s.RDB.Set(ctx, featuredCacheKey, payload, featuredCacheTTL).Err(); err != nil {
				s.ErrorLog.Printf("redis: set featured: %v", err)
			}
		}
	}
	return properties, nil
}

// GetTrips groups the user's reservations into upcoming, previous and pending
// stays plus the wishlist.
func (s *PropertyService) GetTrips(ctx context.Context, userID int) (models.TripsResponse, error) {
	next, err := s.PropertyRepo.GetPropertiesByReservationStatus(ctx, userID, models.ReservationStatusActive)
	if err != nil {
		return models.TripsResponse{}, err
	}
	previous, err := s.PropertyRepo.GetPropertiesByReservationStatus(ctx, userID, models.ReservationStatusFinished)
	if err != nil {
		return models.TripsResponse{}, err
	}
	pending, err := s.PropertyRepo.GetPropertiesByReservationStatus(ctx, userID, models.ReservationStatusPending)
	if err != nil {
		return models.TripsResponse{}, err
	}
	wishlist, err := s.PropertyRepo.GetWishlistProperties(ctx, userID)
	if err != nil {
		return models.TripsResponse{}, err
	}

	return models.TripsResponse{
		Next:     next,
		Previous: previous,
		Pending:  pending,
		Wishlist: wishlist,
	}, nil
}

func (s *PropertyService) AddPhoto(ctx context.Context, photo models.Photo, actorUserID int) (models.Photo, error) {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, photo.PropertyID)
	if err != nil {
		return models.Photo{}, err
	}
	if existing.UserID != actorUserID {
		return models.Photo{}, models.ErrNotAuthorized
	}
	return s.PropertyRepo.AddPhoto(ctx, photo)
}

func (s *PropertyService) index(p models.Property) {
	if s.Search == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.Search.IndexProperty(ctx, p); err != nil {
		s.ErrorLog.Printf("search: index property %d: %v", p.ID, err)
	}
}
