package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/PencariData/search-service-api/internal/domain"
)

// accommodationDoc is the raw index document shape.
type accommodationDoc struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	FullDestination   string          `json:"fullDestination"`
	AccommodationType string          `json:"accommodationType"`
	Coordinate        json.RawMessage `json:"coordinate"`
}

// mapAccommodation converts one raw _source document into a validated
// domain record. Callers skip (and warn about) documents that fail here
// rather than failing the whole page.
func mapAccommodation(raw json.RawMessage) (domain.Accommodation, error) {
	var doc accommodationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Accommodation{}, fmt.Errorf("unmarshal document: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("parse document id %q: %w", doc.ID, err)
	}

	coord, err := parseCoordinate(doc.Coordinate)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("parse coordinate: %w", err)
	}

	return domain.NewAccommodation(
		id,
		doc.Name,
		doc.FullDestination,
		domain.ParseAccommodationType(doc.AccommodationType),
		coord,
	)
}

// parseCoordinate tolerates the three coordinate shapes the index stores:
// a geo-point object {"lat": .., "lon": ..}, a "lat,lon" string, and a
// GeoJSON [lon, lat] array. A missing coordinate degrades to the origin.
func parseCoordinate(raw json.RawMessage) (domain.Coordinate, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.Coordinate{}, nil
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Lat != nil && obj.Lon != nil {
		return domain.NewCoordinate(*obj.Lat, *obj.Lon)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return domain.Coordinate{}, fmt.Errorf("malformed coordinate string %q", s)
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr != nil || lonErr != nil {
			return domain.Coordinate{}, fmt.Errorf("malformed coordinate string %q", s)
		}
		return domain.NewCoordinate(lat, lon)
	}

	var arr []float64
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) != 2 {
			return domain.Coordinate{}, fmt.Errorf("malformed coordinate array of length %d", len(arr))
		}
		// GeoJSON order is [lon, lat].
		return domain.NewCoordinate(arr[1], arr[0])
	}

	return domain.Coordinate{}, nil
}
