// Package mapview models the map viewport, its markers and the shared popup.
// It holds no locks; callers serialize access.
package mapview

import (
	"fmt"
	"maps"
	"slices"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// DefaultZoom is the zoom level the viewport starts with.
const DefaultZoom = 14

// Kind distinguishes the center marker from neighbor markers.
type Kind string

const (
	// KindCenter marks the resolved search location.
	KindCenter Kind = "center"
	// KindNeighbor marks a nearby venue.
	KindNeighbor Kind = "neighbor"
)

// MarkerID identifies a marker within one Map. IDs are never reused.
type MarkerID uint64

// Marker is a pin rendered on the map.
type Marker struct {
	ID       MarkerID
	Kind     Kind
	Position domain.Coordinate
	Title    string
	Icon     string
}

// Map is the viewport plus the set of attached markers.
type Map struct {
	center  domain.Coordinate
	zoom    int
	nextID  MarkerID
	markers map[MarkerID]Marker
}

// New creates an empty map. A non-positive zoom falls back to DefaultZoom.
func New(zoom int) *Map {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Map{zoom: zoom, markers: make(map[MarkerID]Marker)}
}

// Center returns the viewport center.
func (m *Map) Center() domain.Coordinate { return m.center }

// Zoom returns the viewport zoom level.
func (m *Map) Zoom() int { return m.zoom }

// PanTo moves the viewport center.
func (m *Map) PanTo(c domain.Coordinate) { m.center = c }

// Attach creates a marker and renders it on the map.
func (m *Map) Attach(kind Kind, pos domain.Coordinate, title, icon string) Marker {
	m.nextID++
	mk := Marker{ID: m.nextID, Kind: kind, Position: pos, Title: title, Icon: icon}
	m.markers[mk.ID] = mk
	return mk
}

// Detach removes a marker from the map. Detaching an unknown marker is a no-op.
func (m *Map) Detach(id MarkerID) bool {
	if _, ok := m.markers[id]; !ok {
		return false
	}
	delete(m.markers, id)
	return true
}

// Marker returns an attached marker by ID.
func (m *Map) Marker(id MarkerID) (Marker, error) {
	mk, ok := m.markers[id]
	if !ok {
		return Marker{}, fmt.Errorf("marker %d: %w", id, domain.ErrMarkerNotFound)
	}
	return mk, nil
}

// IsAttached reports whether the marker is rendered.
func (m *Map) IsAttached(id MarkerID) bool {
	_, ok := m.markers[id]
	return ok
}

// Markers returns attached markers in creation order.
func (m *Map) Markers() []Marker {
	ids := slices.Sorted(maps.Keys(m.markers))
	out := make([]Marker, len(ids))
	for i, id := range ids {
		out[i] = m.markers[id]
	}
	return out
}

// Len returns the number of attached markers.
func (m *Map) Len() int { return len(m.markers) }
