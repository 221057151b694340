package view

import (
	"fmt"
	"html"
	"sync"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
)

// DefaultCenterIcon is the marker image for the center place.
const DefaultCenterIcon = "img/center-marker.png"

// Config holds view settings.
type Config struct {
	Zoom       int
	CenterIcon string
}

type neighbor struct {
	place  domain.NeighborPlace
	marker mapview.Marker
}

type center struct {
	place  domain.CenterPlace
	marker mapview.Marker
}

// View owns the map, the center marker, the neighbor-place collection, the shared
// popup and the status. Every mutation goes through one mutex, so the view behaves
// like a single event loop regardless of how many search cycles are in flight.
type View struct {
	mu         sync.Mutex
	m          *mapview.Map
	popup      mapview.Popup
	center     *center
	neighbors  []neighbor
	status     domain.Status
	query      string
	generation uint64
	centerIcon string

	subs    map[int]chan Snapshot
	nextSub int
}

// New creates an idle view.
func New(cfg Config) *View {
	icon := cfg.CenterIcon
	if icon == "" {
		icon = DefaultCenterIcon
	}
	return &View{
		m:          mapview.New(cfg.Zoom),
		status:     domain.StatusIdle,
		centerIcon: icon,
		subs:       make(map[int]chan Snapshot),
	}
}

// Begin opens a new search cycle: clears all place state, sets Loading and
// returns the cycle generation.
func (v *View) Begin(query string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.query = query
	v.clearLocked()
	v.status = domain.StatusLoading
	v.notifyLocked()
	return v.generation
}

// IsCurrent reports whether gen is the latest cycle.
func (v *View) IsCurrent(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return gen == v.generation
}

// SetCenter replaces the center place, recenters the map and attaches the center marker.
func (v *View) SetCenter(gen uint64, place domain.CenterPlace) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return fmt.Errorf("set center for generation %d: %w", gen, domain.ErrSuperseded)
	}
	if v.center != nil {
		v.m.Detach(v.center.marker.ID)
	}
	v.m.PanTo(place.Location)
	mk := v.m.Attach(mapview.KindCenter, place.Location, place.Query, v.centerIcon)
	v.center = &center{place: place, marker: mk}
	v.notifyLocked()
	return nil
}

// ShowNeighbors appends places in the given order, one marker each, and settles
// the cycle as NoResults or Ready.
func (v *View) ShowNeighbors(gen uint64, places []domain.NeighborPlace) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return fmt.Errorf("show neighbors for generation %d: %w", gen, domain.ErrSuperseded)
	}
	for _, p := range places {
		mk := v.m.Attach(mapview.KindNeighbor, p.Location, p.Name, "")
		v.neighbors = append(v.neighbors, neighbor{place: p, marker: mk})
	}
	if len(v.neighbors) == 0 {
		v.status = domain.StatusNoResults
	} else {
		v.status = domain.StatusReady
	}
	v.notifyLocked()
	return nil
}

// Fail settles the cycle as Error. Place state stays as it is.
func (v *View) Fail(gen uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return fmt.Errorf("fail generation %d: %w", gen, domain.ErrSuperseded)
	}
	v.status = domain.StatusError
	v.notifyLocked()
	return nil
}

// Clear detaches every neighbor marker, empties the collection, then detaches the
// center marker and closes the popup. Safe to call repeatedly.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clearLocked()
	v.notifyLocked()
}

func (v *View) clearLocked() {
	for _, n := range v.neighbors {
		v.m.Detach(n.marker.ID)
	}
	v.neighbors = nil
	if v.center != nil {
		v.m.Detach(v.center.marker.ID)
		v.center = nil
	}
	v.popup.Close()
}

// ShowInfo handles a marker click: pans to the marker's place and opens the shared popup on it.
func (v *View) ShowInfo(id mapview.MarkerID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.center != nil && v.center.marker.ID == id {
		return v.showCenterLocked()
	}
	for i := range v.neighbors {
		if v.neighbors[i].marker.ID == id {
			return v.showNeighborLocked(i)
		}
	}
	return fmt.Errorf("marker %d: %w", id, domain.ErrMarkerNotFound)
}

// ShowInfoAt handles a list click on the place at index.
func (v *View) ShowInfoAt(index int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.neighbors) {
		return fmt.Errorf("place %d of %d: %w", index, len(v.neighbors), domain.ErrPlaceNotFound)
	}
	return v.showNeighborLocked(index)
}

// ShowCenterInfo handles a click on the center marker.
func (v *View) ShowCenterInfo() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.center == nil {
		return fmt.Errorf("center marker: %w", domain.ErrMarkerNotFound)
	}
	return v.showCenterLocked()
}

func (v *View) showCenterLocked() error {
	v.m.PanTo(v.center.place.Location)
	if err := v.popup.Open(v.m, html.EscapeString(v.center.place.Query), v.center.marker.ID); err != nil {
		return fmt.Errorf("show center info: %w", err)
	}
	v.notifyLocked()
	return nil
}

func (v *View) showNeighborLocked(i int) error {
	n := v.neighbors[i]
	v.m.PanTo(n.place.Location)
	if err := v.popup.Open(v.m, PopupContent(n.place), n.marker.ID); err != nil {
		return fmt.Errorf("show info for %q: %w", n.place.Name, err)
	}
	v.notifyLocked()
	return nil
}

// PopupContent renders the info bubble markup for a neighbor place.
func PopupContent(p domain.NeighborPlace) string {
	return `<div class="infowindow"><div class="neighbor-name">` + html.EscapeString(p.Name) +
		`</div><div>` + html.EscapeString(p.Address) + `</div></div>`
}
