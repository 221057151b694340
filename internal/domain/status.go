package domain

// Status is the lifecycle phase of the current search cycle.
type Status string

// Status values. Idle is the state before the first query.
const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusError     Status = "error"
	StatusNoResults Status = "no_results"
	StatusReady     Status = "ready"
)

// IsValid checks if the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusError, StatusNoResults, StatusReady:
		return true
	}
	return false
}

// IsSettled reports whether a cycle has finished, successfully or not.
func (s Status) IsSettled() bool {
	return s == StatusError || s == StatusNoResults || s == StatusReady
}

// Label returns the text shown next to the search box.
func (s Status) Label() string {
	switch s {
	case StatusLoading:
		return "Loading..."
	case StatusNoResults:
		return "No Results Found"
	case StatusError:
		return "Error"
	default:
		return ""
	}
}
