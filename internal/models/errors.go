package models

import (
	"errors"
)

var (
	ErrUserNotFound        = errors.New("models: user not found")
	ErrPropertyNotFound    = errors.New("models: property not found")
	ErrReservationNotFound = errors.New("models: reservation not found")
	ErrTalkNotFound        = errors.New("models: talk not found")
	ErrWishlistNotFound    = errors.New("models: wishlist entry not found")

	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")

	ErrInvalidDateRange   = errors.New("models: checkin date must be before checkout date")
	ErrInvalidRating      = errors.New("models: rating must be between 0 and 5")
	ErrEmptyComment       = errors.New("models: evaluation comment must not be blank")
	ErrInvalidStatus      = errors.New("models: invalid status value")
	ErrMissingAddress     = errors.New("models: property requires an address")
	ErrMissingFacility    = errors.New("models: property requires a facility record")

	ErrSearchUnavailable = errors.New("models: search backend unavailable")

	ErrReservationConflict = errors.New("models: dates overlap an existing reservation")
	ErrAlreadyEvaluated    = errors.New("models: reservation already evaluated")
	ErrInvalidTransition   = errors.New("models: transition not allowed from current status")
	ErrNotAuthorized       = errors.New("models: actor not allowed to perform this action")
)
