package nearby

// Status is the phase of the current search.
type Status string

// Status constants.
const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusError     Status = "error"
	StatusNoResults Status = "no_results"
	StatusReady     Status = "ready"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lng float64
}

// View is a copy of the widget state after an operation.
type View struct {
	Query      string
	Status     Status
	StatusText string // "Loading...", "No Results Found", "Error" or empty
	Center     Coordinate
	Zoom       int
	Place      *CenterPlace // nil until text search succeeds
	Places     []Place
	Popup      *Popup // nil when closed
}

// CenterPlace is the resolved query.
type CenterPlace struct {
	Name     string
	Address  string
	Location Coordinate
	MarkerID uint64
}

// Place is one venue near the center, in provider order.
type Place struct {
	Index          int
	Name           string
	Category       string
	Address        string
	Phone          string
	Rating         *float64 // nil when the venue has no rating
	Location       Coordinate
	DistanceMeters float64
	MarkerID       uint64
}

// Popup is the shared info window.
type Popup struct {
	Content  string // HTML: infowindow markup for places, the escaped query for the center
	MarkerID uint64
}

// HealthStatus represents the provider configuration state.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // provider → "ok"/"error"/"not_configured"
}
