package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

var (
	searchLimit  int
	searchSelect int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one search cycle and print the center and the nearby places",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, logger, err := buildApp()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		snap, err := a.Search.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		if searchSelect > 0 {
			if err := a.View.ShowInfoAt(searchSelect - 1); err != nil {
				return fmt.Errorf("select place %d: %w", searchSelect, err)
			}
			snap = a.View.Snapshot()
		}

		printSnapshot(cmd.OutOrStdout(), snap, searchLimit)
		if snap.Status == domain.StatusError {
			return errors.New("search failed, see logs")
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "print at most n places (0: all)")
	searchCmd.Flags().IntVar(&searchSelect, "select", 0, "open the popup of the n-th place (1-based)")
	rootCmd.AddCommand(searchCmd)
}

var (
	centerColor = color.New(color.FgYellow, color.Bold)
	nameColor   = color.New(color.FgCyan, color.Bold)
	mutedColor  = color.New(color.Faint)
	statusColor = map[domain.Status]*color.Color{
		domain.StatusLoading:   color.New(color.FgBlue),
		domain.StatusError:     color.New(color.FgRed, color.Bold),
		domain.StatusNoResults: color.New(color.FgYellow),
	}
)

// printSnapshot renders the view as the text widget.
func printSnapshot(w io.Writer, s viewuc.Snapshot, limit int) {
	if c := s.CenterMark; c != nil {
		centerColor.Fprintf(w, "★ %s", c.Place.Name)
		if c.Place.Address != "" {
			fmt.Fprintf(w, "  %s", c.Place.Address)
		}
		mutedColor.Fprintf(w, "  (%.5f, %.5f) zoom %d\n", c.Place.Location.Lat, c.Place.Location.Lng, s.Zoom)
	}

	if text := s.StatusText(); text != "" {
		if c, ok := statusColor[s.Status]; ok {
			c.Fprintln(w, text)
		} else {
			fmt.Fprintln(w, text)
		}
	}

	for i, p := range s.Places {
		if limit > 0 && i >= limit {
			mutedColor.Fprintf(w, "… %d more\n", len(s.Places)-limit)
			break
		}
		fmt.Fprintf(w, "%2d. ", i+1)
		nameColor.Fprint(w, p.Place.Name)
		if p.Place.Category != "" {
			mutedColor.Fprintf(w, "  %s", p.Place.Category)
		}
		fmt.Fprintln(w)
		if p.Place.Address != "" {
			fmt.Fprintf(w, "    %s\n", p.Place.Address)
		}
		if p.Place.HasPhone() {
			fmt.Fprintf(w, "    %s\n", p.Place.Phone)
		}
		details := geo.FormatDistance(p.Place.DistanceMeters)
		if p.Place.Rating.Valid() {
			details = "rating " + p.Place.Rating.String() + ", " + details
		}
		mutedColor.Fprintf(w, "    %s\n", details)
	}

	if s.Popup != nil {
		fmt.Fprintf(w, "\npopup: %s\n", s.Popup.Content)
	}
}
