package models

import (
	"math"
	"time"
)

type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusBlocked  PropertyStatus = "blocked"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusActive, PropertyStatusPending, PropertyStatusInactive, PropertyStatusBlocked:
		return true
	}
	return false
}

type AccommodationType string

const (
	AccommodationWholeHouse    AccommodationType = "whole_house"
	AccommodationWholeBedroom  AccommodationType = "whole_bedroom"
	AccommodationSharedBedroom AccommodationType = "shared_bedroom"
)

func (t AccommodationType) Valid() bool {
	switch t {
	case AccommodationWholeHouse, AccommodationWholeBedroom, AccommodationSharedBedroom:
		return true
	}
	return false
}

type Address struct {
	ID           int    `json:"id"`
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

type Facility struct {
	ID              int  `json:"id"`
	Wifi            bool `json:"wifi"`
	WashingMachine  bool `json:"washing_machine"`
	ClothesIron     bool `json:"clothes_iron"`
	Towels          bool `json:"towels"`
	AirConditioning bool `json:"air_conditioning"`
	Refrigerator    bool `json:"refrigerator"`
	Heater          bool `json:"heater"`
}

type Photo struct {
	ID         int    `json:"id"`
	PropertyID int    `json:"property_id"`
	Path       string `json:"path"`
}

type Property struct {
	ID                int               `json:"id"`
	UserID            int               `json:"user_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Status            PropertyStatus    `json:"status"`
	AccommodationType AccommodationType `json:"accommodation_type"`
	Price             float64           `json:"price"`
	Beds              int               `json:"beds"`
	Bedroom           int               `json:"bedroom"`
	Bathroom          int               `json:"bathroom"`
	GuestMax          int               `json:"guest_max"`
	Priority          bool              `json:"priority"`
	Rating            float64           `json:"-"`
	DisplayRating     int               `json:"rating"`
	Address           Address           `json:"address"`
	Facility          Facility          `json:"facility"`
	Photos            []Photo           `json:"photos,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at,omitempty"`
}

// RoundRating rounds the stored mean half-up for display, matching the
// aggregate exposed by the API. The raw mean is never sent to clients.
func (p *Property) RoundRating() {
	p.DisplayRating = int(math.Floor(p.Rating + 0.5))
}

type TripsResponse struct {
	Next     []Property `json:"next"`
	Previous []Property `json:"previous"`
	Pending  []Property `json:"pending"`
	Wishlist []Property `json:"wishlist"`
}
