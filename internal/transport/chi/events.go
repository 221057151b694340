package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/nearby/internal/logger"
)

// Events handles GET /api/v1/events: a server-sent-events stream with one
// "view" event per view change, starting with the current state.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	log := logpkg.FromContextOr(r.Context(), s.logger)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		log.Warn("event stream not supported", zap.Error(err))
		return
	}

	snaps, stop := s.view.Subscribe()
	defer stop()

	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			data, err := json.Marshal(viewToDTO(snap))
			if err != nil {
				log.Error("encode view event", zap.Error(err))
				return
			}
			if _, err := fmt.Fprintf(w, "event: view\nid: %d\ndata: %s\n\n", snap.Generation, data); err != nil {
				return
			}
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
