package view

import (
	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
)

// Snapshot is an immutable copy of the view, used by every UI binding.
type Snapshot struct {
	Generation uint64
	Query      string
	Status     domain.Status
	Center     domain.Coordinate
	Zoom       int
	CenterMark *CenterEntry
	Places     []PlaceEntry
	Markers    []mapview.Marker
	Popup      *PopupState
}

// CenterEntry is the center place with its marker.
type CenterEntry struct {
	Place  domain.CenterPlace
	Marker mapview.Marker
}

// PlaceEntry is a neighbor place with its marker.
type PlaceEntry struct {
	Place  domain.NeighborPlace
	Marker mapview.Marker
}

// PopupState describes the open popup.
type PopupState struct {
	Content string
	Anchor  mapview.MarkerID
}

// StatusText is the label shown for the status.
func (s Snapshot) StatusText() string { return s.Status.Label() }

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	s := Snapshot{
		Generation: v.generation,
		Query:      v.query,
		Status:     v.status,
		Center:     v.m.Center(),
		Zoom:       v.m.Zoom(),
		Places:     make([]PlaceEntry, len(v.neighbors)),
		Markers:    v.m.Markers(),
	}
	if v.center != nil {
		s.CenterMark = &CenterEntry{Place: v.center.place, Marker: v.center.marker}
	}
	for i, n := range v.neighbors {
		s.Places[i] = PlaceEntry{Place: n.place, Marker: n.marker}
	}
	if anchor, open := v.popup.Anchor(); open {
		s.Popup = &PopupState{Content: v.popup.Content(), Anchor: anchor}
	}
	return s
}

// Subscribe returns a channel that receives a snapshot after every change, and a
// function that stops the subscription. Slow readers only see the latest snapshot.
func (v *View) Subscribe() (<-chan Snapshot, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextSub
	v.nextSub++
	ch := make(chan Snapshot, 1)
	ch <- v.snapshotLocked()
	v.subs[id] = ch

	return ch, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if c, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(c)
		}
	}
}

func (v *View) notifyLocked() {
	if len(v.subs) == 0 {
		return
	}
	snap := v.snapshotLocked()
	for _, ch := range v.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot the reader has not picked up yet.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
