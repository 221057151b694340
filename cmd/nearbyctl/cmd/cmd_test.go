package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func snapshot() viewuc.Snapshot {
	r := 8.7
	return viewuc.Snapshot{
		Query:  "Udacity",
		Status: domain.StatusReady,
		Zoom:   14,
		CenterMark: &viewuc.CenterEntry{
			Place: domain.CenterPlace{Query: "Udacity", Name: "Udacity", Address: "2465 Latham St",
				Location: domain.Coordinate{Lat: 37.386, Lng: -122.115}},
		},
		Places: []viewuc.PlaceEntry{
			{Place: domain.NeighborPlace{Name: "Red Rock Coffee", Category: "Coffee Shop", Address: "201 Castro St",
				Phone: "(650) 967-4473", Rating: domain.NewRating(&r), DistanceMeters: 3201.4}},
			{Place: domain.NeighborPlace{Name: "Castro Street Market", DistanceMeters: 2950}},
			{Place: domain.NeighborPlace{Name: "Third", DistanceMeters: 10}},
		},
	}
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, snapshot(), 0)
	out := buf.String()

	for _, want := range []string{
		"★ Udacity  2465 Latham St  (37.38600, -122.11500) zoom 14",
		" 1. Red Rock Coffee  Coffee Shop",
		"    (650) 967-4473",
		"    rating 8.7, 3.2 km",
		" 2. Castro Street Market\n",
		"    3.0 km",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "rating 0") {
		t.Error("absent rating must not be printed")
	}
}

func TestPrintSnapshot_Limit(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, snapshot(), 2)
	out := buf.String()

	if strings.Contains(out, "Third") {
		t.Error("expected third place cut by limit")
	}
	if !strings.Contains(out, "… 1 more") {
		t.Errorf("expected remainder line:\n%s", out)
	}
}

func TestPrintSnapshot_StatusAndPopup(t *testing.T) {
	s := viewuc.Snapshot{Status: domain.StatusNoResults, Popup: &viewuc.PopupState{Content: "Udacity", Anchor: mapview.MarkerID(1)}}

	var buf bytes.Buffer
	printSnapshot(&buf, s, 0)
	out := buf.String()

	if !strings.Contains(out, "No Results Found\n") {
		t.Errorf("expected status line:\n%s", out)
	}
	if !strings.Contains(out, "popup: Udacity") {
		t.Errorf("expected popup line:\n%s", out)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, []string{"places", "venues"}, healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"places": healthuc.CheckOK, "venues": healthuc.CheckNotConfigured},
	})

	want := "places   ok\nvenues   not_configured\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "nearbyctl dev") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	rootCmd.SetArgs([]string{"search"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error without a query")
	}
}
