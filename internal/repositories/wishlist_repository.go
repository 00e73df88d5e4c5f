package repositories

import (
	"context"
	"database/sql"
	"errors"

	"stayBack/internal/models"
)

type WishlistRepository struct {
	DB *sql.DB
}

/// AddToWishlist is a find-or-create: adding a property that is already on the
// user's wishlist returns the existing entry.
func (r *WishlistRepository) AddToWishlist(ctx context.Context, userID, propertyID int) (models.Wishlist, error) {
	existing, err := r.getEntry(ctx, userID, propertyID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrWishlistNotFound) {
		return models.Wishlist{}, err
	}

	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO wishlists (user_id, property_id, created_at) VALUES (?, ?, NOW())`,
		userID, propertyID,
	)
	if err != nil {
		return models.Wishlist{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Wishlist{}, err
	}
	return models.Wishlist{ID: int(id), UserID: userID, PropertyID: propertyID}, nil
}

func (r *WishlistRepository) RemoveFromWishlist(ctx context.Context, userID, propertyID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM wishlists WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrWishlistNotFound
	}
	return nil
}

func (r *WishlistRepository) IsWishlisted(ctx context.Context, userID, propertyID int) (bool, error) {
	_, err := r.getEntry(ctx, userID, propertyID)
	if errors.Is(err, models.ErrWishlistNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *WishlistRepository) getEntry(ctx context.Context, userID, propertyID int) (models.Wishlist, error) {
	var w models.Wishlist
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, property_id, created_at FROM wishlists WHERE user_id = ? AND property_id = ?`,
		userID, propertyID,
	).Scan(&w.ID, &w.UserID, &w.PropertyID, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Wishlist{}, models.ErrWishlistNotFound
	}
	if err != nil {
		return models.Wishlist{}, err
	}
	return w, nil
}
