package domain

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// NewCoordinate validates lat/lng and builds a Coordinate.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if !geo.ValidateCoordinates(lat, lng) {
		return Coordinate{}, fmt.Errorf("%w: lat=%f lng=%f", ErrInvalidCoordinates, lat, lng)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// DistanceTo returns the great-circle distance to other in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return geo.Haversine(c.Lat, c.Lng, other.Lat, other.Lng)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}

// PlaceMatch is one text-search hit.
type PlaceMatch struct {
	Name             string
	FormattedAddress string
	Location         Coordinate
}

// CenterPlace is the place a query resolved to. Exactly one is active per view.
type CenterPlace struct {
	Query    string
	Name     string
	Address  string
	Location Coordinate
}

// NewCenterPlace builds the center place for query from the first text-search hit.
func NewCenterPlace(query string, m PlaceMatch) CenterPlace {
	return CenterPlace{
		Query:    query,
		Name:     m.Name,
		Address:  m.FormattedAddress,
		Location: m.Location,
	}
}

// Venue is a raw venue as returned by the venues provider.
type Venue struct {
	Name       string
	Categories []string
	Address    string
	Phone      string
	Rating     *float64
	Location   Coordinate
}

// NeighborPlace is one venue near the center place, rendered as a list entry and a marker.
type NeighborPlace struct {
	Name           string
	Category       string
	Address        string
	Phone          string
	Rating         Rating
	Location       Coordinate
	DistanceMeters float64
}

// NewNeighborPlace maps a venue to its display form. Only the first category is kept.
func NewNeighborPlace(v Venue, center Coordinate) NeighborPlace {
	var category string
	if len(v.Categories) > 0 {
		category = v.Categories[0]
	}
	return NeighborPlace{
		Name:           strings.TrimSpace(v.Name),
		Category:       category,
		Address:        v.Address,
		Phone:          v.Phone,
		Rating:         NewRating(v.Rating),
		Location:       v.Location,
		DistanceMeters: center.DistanceTo(v.Location),
	}
}

// HasPhone reports whether the venue listed a phone number.
func (p NeighborPlace) HasPhone() bool { return p.Phone != "" }
