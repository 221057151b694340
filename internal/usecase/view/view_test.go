package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
)

var udacity = domain.CenterPlace{
	Query:    "Udacity",
	Name:     "Udacity",
	Location: domain.Coordinate{Lat: 37.386, Lng: -122.115},
}

func neighbors(names ...string) []domain.NeighborPlace {
	out := make([]domain.NeighborPlace, len(names))
	for i, n := range names {
		out[i] = domain.NeighborPlace{
			Name:     n,
			Address:  n + " street",
			Location: domain.Coordinate{Lat: 37.39 + float64(i)*0.001, Lng: -122.08},
		}
	}
	return out
}

// loaded returns a view with a center and the given neighbors rendered.
func loaded(t *testing.T, names ...string) (*View, uint64) {
	t.Helper()
	v := New(Config{Zoom: 14})
	gen := v.Begin("Udacity")
	if err := v.SetCenter(gen, udacity); err != nil {
		t.Fatalf("SetCenter: %v", err)
	}
	if err := v.ShowNeighbors(gen, neighbors(names...)); err != nil {
		t.Fatalf("ShowNeighbors: %v", err)
	}
	return v, gen
}

func TestNew_Idle(t *testing.T) {
	s := New(Config{}).Snapshot()
	if s.Status != domain.StatusIdle {
		t.Errorf("expected idle, got %s", s.Status)
	}
	if s.Zoom != mapview.DefaultZoom {
		t.Errorf("expected default zoom, got %d", s.Zoom)
	}
	if len(s.Places) != 0 || len(s.Markers) != 0 {
		t.Error("expected empty view")
	}
}

func TestBegin_SetsLoadingAndClears(t *testing.T) {
	v, gen := loaded(t, "a", "b")

	next := v.Begin("Mountain View")
	if next != gen+1 {
		t.Errorf("expected generation %d, got %d", gen+1, next)
	}

	s := v.Snapshot()
	if s.Status != domain.StatusLoading {
		t.Errorf("expected loading, got %s", s.Status)
	}
	if s.StatusText() != "Loading..." {
		t.Errorf("status text: got %q", s.StatusText())
	}
	if len(s.Places) != 0 || len(s.Markers) != 0 || s.CenterMark != nil {
		t.Errorf("expected cleared view, got %d places %d markers", len(s.Places), len(s.Markers))
	}
	if s.Query != "Mountain View" {
		t.Errorf("query: got %q", s.Query)
	}
}

func TestSetCenter_PansAndAttachesDistinctMarker(t *testing.T) {
	v := New(Config{Zoom: 14})
	gen := v.Begin("Udacity")
	if err := v.SetCenter(gen, udacity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := v.Snapshot()
	if s.Center != udacity.Location {
		t.Errorf("map center: got %+v", s.Center)
	}
	if s.CenterMark == nil {
		t.Fatal("expected center marker")
	}
	mk := s.CenterMark.Marker
	if mk.Kind != mapview.KindCenter || mk.Icon != DefaultCenterIcon || mk.Title != "Udacity" {
		t.Errorf("unexpected center marker: %+v", mk)
	}
	if s.Status != domain.StatusLoading {
		t.Errorf("center alone must not settle the cycle, got %s", s.Status)
	}
}

func TestShowNeighbors_OneMarkerEachInOrder(t *testing.T) {
	v, _ := loaded(t, "first", "second", "third")
	s := v.Snapshot()

	if s.Status != domain.StatusReady {
		t.Errorf("expected ready, got %s", s.Status)
	}
	if len(s.Places) != 3 {
		t.Fatalf("expected 3 places, got %d", len(s.Places))
	}
	seen := make(map[mapview.MarkerID]bool)
	for i, want := range []string{"first", "second", "third"} {
		p := s.Places[i]
		if p.Place.Name != want {
			t.Errorf("place %d: got %q, want %q", i, p.Place.Name, want)
		}
		if p.Marker.Kind != mapview.KindNeighbor {
			t.Errorf("place %d: marker kind %s", i, p.Marker.Kind)
		}
		if seen[p.Marker.ID] {
			t.Errorf("place %d: marker %d shared", i, p.Marker.ID)
		}
		seen[p.Marker.ID] = true
	}
	// 3 neighbors + center
	if len(s.Markers) != 4 {
		t.Errorf("expected 4 attached markers, got %d", len(s.Markers))
	}
}

func TestShowNeighbors_EmptyIsNoResults(t *testing.T) {
	v, _ := loaded(t)
	s := v.Snapshot()

	if s.Status != domain.StatusNoResults {
		t.Errorf("expected no_results, got %s", s.Status)
	}
	if s.StatusText() != "No Results Found" {
		t.Errorf("status text: got %q", s.StatusText())
	}
}

func TestStaleGeneration_Rejected(t *testing.T) {
	v := New(Config{})
	old := v.Begin("old")
	v.Begin("new")

	if err := v.SetCenter(old, udacity); !errors.Is(err, domain.ErrSuperseded) {
		t.Errorf("SetCenter: expected ErrSuperseded, got %v", err)
	}
	if err := v.ShowNeighbors(old, neighbors("x")); !errors.Is(err, domain.ErrSuperseded) {
		t.Errorf("ShowNeighbors: expected ErrSuperseded, got %v", err)
	}
	if err := v.Fail(old); !errors.Is(err, domain.ErrSuperseded) {
		t.Errorf("Fail: expected ErrSuperseded, got %v", err)
	}

	s := v.Snapshot()
	if s.Status != domain.StatusLoading || len(s.Markers) != 0 {
		t.Errorf("stale cycle mutated the view: status=%s markers=%d", s.Status, len(s.Markers))
	}
}

func TestFail_SetsError(t *testing.T) {
	v := New(Config{})
	gen := v.Begin("Nowhere12345")
	if err := v.Fail(gen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := v.Snapshot(); s.Status != domain.StatusError || s.StatusText() != "Error" {
		t.Errorf("expected error status, got %s (%q)", s.Status, s.StatusText())
	}
}

func TestClear_Idempotent(t *testing.T) {
	v, _ := loaded(t, "a", "b")
	if err := v.ShowInfoAt(0); err != nil {
		t.Fatalf("ShowInfoAt: %v", err)
	}

	v.Clear()
	v.Clear()

	s := v.Snapshot()
	if len(s.Places) != 0 {
		t.Errorf("expected empty collection, got %d", len(s.Places))
	}
	if len(s.Markers) != 0 {
		t.Errorf("expected no attached markers, got %d", len(s.Markers))
	}
	if s.CenterMark != nil {
		t.Error("expected center marker detached")
	}
	if s.Popup != nil {
		t.Error("expected popup closed")
	}
}

func TestShowInfo_NeighborMarkerClick(t *testing.T) {
	v, _ := loaded(t, "Red Rock", "Castro Market")
	target := v.Snapshot().Places[1]

	if err := v.ShowInfo(target.Marker.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := v.Snapshot()
	if s.Center != target.Place.Location {
		t.Errorf("map center: got %+v, want %+v", s.Center, target.Place.Location)
	}
	if s.Popup == nil {
		t.Fatal("expected open popup")
	}
	if s.Popup.Anchor != target.Marker.ID {
		t.Errorf("popup anchor: got %d, want %d", s.Popup.Anchor, target.Marker.ID)
	}
	if !strings.Contains(s.Popup.Content, "Castro Market") ||
		!strings.Contains(s.Popup.Content, "Castro Market street") {
		t.Errorf("popup content missing name/address: %q", s.Popup.Content)
	}
}

func TestShowInfoAt_ListClickMovesSharedPopup(t *testing.T) {
	v, _ := loaded(t, "a", "b")

	if err := v.ShowInfoAt(0); err != nil {
		t.Fatalf("ShowInfoAt(0): %v", err)
	}
	if err := v.ShowInfoAt(1); err != nil {
		t.Fatalf("ShowInfoAt(1): %v", err)
	}

	s := v.Snapshot()
	if s.Popup == nil || s.Popup.Anchor != s.Places[1].Marker.ID {
		t.Fatalf("expected popup on second place, got %+v", s.Popup)
	}
	if strings.Contains(s.Popup.Content, ">a<") {
		t.Errorf("stale popup content: %q", s.Popup.Content)
	}
}

func TestShowInfoAt_OutOfRange(t *testing.T) {
	v, _ := loaded(t, "a")
	for _, idx := range []int{-1, 1, 5} {
		if err := v.ShowInfoAt(idx); !errors.Is(err, domain.ErrPlaceNotFound) {
			t.Errorf("index %d: expected ErrPlaceNotFound, got %v", idx, err)
		}
	}
}

func TestShowInfo_UnknownMarker(t *testing.T) {
	v, _ := loaded(t, "a")
	if err := v.ShowInfo(9999); !errors.Is(err, domain.ErrMarkerNotFound) {
		t.Errorf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestShowInfo_CenterMarkerShowsQuery(t *testing.T) {
	v, _ := loaded(t, "a")
	s := v.Snapshot()
	v.ShowInfoAt(0) //nolint:errcheck // move the popup away first

	if err := v.ShowInfo(s.CenterMark.Marker.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := v.Snapshot()
	if after.Center != udacity.Location {
		t.Errorf("expected recenter on center place, got %+v", after.Center)
	}
	if after.Popup == nil || after.Popup.Content != "Udacity" {
		t.Errorf("expected popup with query text, got %+v", after.Popup)
	}
}

func TestShowCenterInfo_NoCenter(t *testing.T) {
	v := New(Config{})
	if err := v.ShowCenterInfo(); !errors.Is(err, domain.ErrMarkerNotFound) {
		t.Errorf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestPopupContent_EscapesMarkup(t *testing.T) {
	got := PopupContent(domain.NeighborPlace{Name: "Tom & Jerry's", Address: "<b>1 Main</b>"})
	want := `<div class="infowindow"><div class="neighbor-name">Tom &amp; Jerry&#39;s</div>` +
		`<div>&lt;b&gt;1 Main&lt;/b&gt;</div></div>`
	if got != want {
		t.Errorf("PopupContent:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestSubscribe_ReceivesLatestSnapshot(t *testing.T) {
	v := New(Config{})
	ch, stop := v.Subscribe()
	defer stop()

	first := <-ch
	if first.Status != domain.StatusIdle {
		t.Fatalf("expected initial idle snapshot, got %s", first.Status)
	}

	gen := v.Begin("Udacity")
	_ = v.SetCenter(gen, udacity)
	_ = v.ShowNeighbors(gen, neighbors("a"))

	select {
	case s := <-ch:
		if s.Status != domain.StatusReady || len(s.Places) != 1 {
			t.Errorf("expected latest ready snapshot, got %s with %d places", s.Status, len(s.Places))
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestSubscribe_StopClosesChannel(t *testing.T) {
	v := New(Config{})
	ch, stop := v.Subscribe()
	<-ch
	stop()
	stop()

	if _, ok := <-ch; ok {
		t.Error("expected closed channel")
	}
	// Changes after unsubscribe must not block or panic.
	v.Begin("x")
}
