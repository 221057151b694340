package mapview

import (
	"fmt"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// Popup is the single info bubble shared by all markers.
// Opening it again moves it; the previous content is gone.
type Popup struct {
	content string
	anchor  MarkerID
	open    bool
}

// Open shows content anchored to the marker. The marker must be attached to m.
func (p *Popup) Open(m *Map, content string, anchor MarkerID) error {
	if !m.IsAttached(anchor) {
		return fmt.Errorf("open popup on marker %d: %w", anchor, domain.ErrMarkerNotFound)
	}
	p.content = content
	p.anchor = anchor
	p.open = true
	return nil
}

// Close hides the popup.
func (p *Popup) Close() {
	*p = Popup{}
}

// IsOpen reports whether the popup is shown.
func (p *Popup) IsOpen() bool { return p.open }

// Content returns the popup markup.
func (p *Popup) Content() string { return p.content }

// Anchor returns the marker the popup is attached to.
func (p *Popup) Anchor() (MarkerID, bool) { return p.anchor, p.open }
