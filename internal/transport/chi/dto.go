package chi

import (
	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodePlaceNotFound    ErrorResponseCode = "place_not_found"
	ErrorResponseCodeMarkerNotFound   ErrorResponseCode = "marker_not_found"
	ErrorResponseCodeSuperseded       ErrorResponseCode = "superseded"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SubmitResponse is returned for an async search.
type SubmitResponse struct {
	Generation uint64 `json:"generation"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Coordinate is a lat/lng pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapState is the viewport.
type MapState struct {
	Center Coordinate `json:"center"`
	Zoom   int        `json:"zoom"`
}

// Marker is an attached map marker.
type Marker struct {
	ID       uint64     `json:"id"`
	Kind     string     `json:"kind"`
	Position Coordinate `json:"position"`
	Title    string     `json:"title"`
	Icon     string     `json:"icon,omitempty"`
}

// CenterPlace is the resolved search location.
type CenterPlace struct {
	Name     string     `json:"name"`
	Address  string     `json:"address,omitempty"`
	Location Coordinate `json:"location"`
	MarkerID uint64     `json:"marker_id"`
}

// NeighborPlace is one list entry. Rating is false when the venue has none.
type NeighborPlace struct {
	Index          int           `json:"index"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	Address        string        `json:"address"`
	Phone          string        `json:"phone,omitempty"`
	Rating         domain.Rating `json:"rating"`
	DistanceMeters float64       `json:"distance_meters"`
	Location       Coordinate    `json:"location"`
	MarkerID       uint64        `json:"marker_id"`
}

// Popup is the open info window.
type Popup struct {
	Content  string `json:"content"`
	MarkerID uint64 `json:"marker_id"`
}

// ViewResponse is the JSON form of the view.
type ViewResponse struct {
	Generation uint64          `json:"generation"`
	Query      string          `json:"query"`
	Status     domain.Status   `json:"status"`
	StatusText string          `json:"status_text"`
	Map        MapState        `json:"map"`
	Center     *CenterPlace    `json:"center,omitempty"`
	Places     []NeighborPlace `json:"places"`
	Markers    []Marker        `json:"markers"`
	Popup      *Popup          `json:"popup,omitempty"`
}

func coordinateToDTO(c domain.Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat, Lng: c.Lng}
}

func markerToDTO(m mapview.Marker) Marker {
	return Marker{
		ID:       uint64(m.ID),
		Kind:     string(m.Kind),
		Position: coordinateToDTO(m.Position),
		Title:    m.Title,
		Icon:     m.Icon,
	}
}

func viewToDTO(s viewuc.Snapshot) ViewResponse {
	resp := ViewResponse{
		Generation: s.Generation,
		Query:      s.Query,
		Status:     s.Status,
		StatusText: s.StatusText(),
		Map:        MapState{Center: coordinateToDTO(s.Center), Zoom: s.Zoom},
		Places:     make([]NeighborPlace, len(s.Places)),
		Markers:    make([]Marker, len(s.Markers)),
	}
	if s.CenterMark != nil {
		resp.Center = &CenterPlace{
			Name:     s.CenterMark.Place.Name,
			Address:  s.CenterMark.Place.Address,
			Location: coordinateToDTO(s.CenterMark.Place.Location),
			MarkerID: uint64(s.CenterMark.Marker.ID),
		}
	}
	for i, p := range s.Places {
		resp.Places[i] = NeighborPlace{
			Index:          i,
			Name:           p.Place.Name,
			Category:       p.Place.Category,
			Address:        p.Place.Address,
			Phone:          p.Place.Phone,
			Rating:         p.Place.Rating,
			DistanceMeters: p.Place.DistanceMeters,
			Location:       coordinateToDTO(p.Place.Location),
			MarkerID:       uint64(p.Marker.ID),
		}
	}
	for i, m := range s.Markers {
		resp.Markers[i] = markerToDTO(m)
	}
	if s.Popup != nil {
		resp.Popup = &Popup{Content: s.Popup.Content, MarkerID: uint64(s.Popup.Anchor)}
	}
	return resp
}
