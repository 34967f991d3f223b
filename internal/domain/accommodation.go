package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// AccommodationType categorizes a property.
type AccommodationType string

const (
	AccommodationHotel      AccommodationType = "hotel"
	AccommodationHostel     AccommodationType = "hostel"
	AccommodationVilla      AccommodationType = "villa"
	AccommodationResort     AccommodationType = "resort"
	AccommodationGuesthouse AccommodationType = "guesthouse"
	AccommodationApartment  AccommodationType = "apartment"
	AccommodationOther      AccommodationType = "other"
)

// ParseAccommodationType maps an index-stored category onto the enum.
// Unknown values degrade to AccommodationOther so a single odd document does
// not fail a whole page.
func ParseAccommodationType(s string) AccommodationType {
	switch AccommodationType(strings.ToLower(strings.TrimSpace(s))) {
	case AccommodationHotel, AccommodationHostel, AccommodationVilla,
		AccommodationResort, AccommodationGuesthouse, AccommodationApartment:
		return AccommodationType(strings.ToLower(strings.TrimSpace(s)))
	default:
		return AccommodationOther
	}
}

// Coordinate is a validated geographic point.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NewCoordinate rejects out-of-range latitude or longitude.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, errors.New("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, errors.New("longitude must be between -180 and 180")
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// Accommodation is one search result item. Immutable once constructed;
// construct only through NewAccommodation.
type Accommodation struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Destination string            `json:"destination"`
	Type        AccommodationType `json:"accommodation_type"`
	Coordinate  Coordinate        `json:"coordinate"`
}

// NewAccommodation validates mandatory fields before constructing.
func NewAccommodation(id uuid.UUID, name, destination string, typ AccommodationType, coord Coordinate) (Accommodation, error) {
	if strings.TrimSpace(name) == "" {
		return Accommodation{}, errors.New("accommodation name cannot be empty")
	}
	if strings.TrimSpace(destination) == "" {
		return Accommodation{}, errors.New("accommodation destination cannot be empty")
	}
	return Accommodation{
		ID:          id,
		Name:        name,
		Destination: destination,
		Type:        typ,
		Coordinate:  coord,
	}, nil
}
