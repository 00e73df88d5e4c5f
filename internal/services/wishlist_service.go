package services

import (
	"context"

	"stayBack/internal/models"
	"stayBack/internal/repositories"
)

type WishlistService struct {
	WishlistRepo *repositories.WishlistRepository
	PropertyRepo *repositories.PropertyRepository
}

func (s *WishlistService) AddToWishlist(ctx context.Context, userID, propertyID int) (models.Wishlist, error) {
	if _, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID); err != nil {
		return models.Wishlist{}, err
	}
	return s.WishlistRepo.AddToWishlist(ctx, userID, propertyID)
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, propertyID int) error {
	return s.WishlistRepo.RemoveFromWishlist(ctx, userID, propertyID)
}

func (s *WishlistService) IsWishlisted(ctx context.Context, userID, propertyID int) (bool, error) {
	return s.WishlistRepo.IsWishlisted(ctx, userID, propertyID)
}

func (s *WishlistService) GetWishlistProperties(ctx context.Context, userID int) ([]models.Property, error) {
	return s.PropertyRepo.GetWishlistProperties(ctx, userID)
}
