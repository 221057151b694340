package chi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"distance": geo.FormatDistance}).
	ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	View  ViewResponse
	Popup template.HTML
}

// Page handles GET /: the widget page rendered from the current view.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	view := viewToDTO(s.view.Snapshot())
	data := pageData{View: view}
	if view.Popup != nil {
		// Popup content is assembled from escaped fields by the view.
		data.Popup = template.HTML(view.Popup.Content) //nolint:gosec // pre-escaped
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Error("render page", zap.Error(err))
	}
}

// PageAction handles POST / from the page forms: a new query, a list click, a
// marker click or a center click. It redirects back to the page.
func (s *Server) PageAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var err error
	switch {
	case r.PostForm.Has("query"):
		_, err = s.search.Search(r.Context(), r.PostForm.Get("query"))
	case r.PostForm.Has("place"):
		var index int
		if bindErr := bindPathParam("place", r.PostForm.Get("place"), &index); bindErr != nil {
			http.Error(w, "invalid place", http.StatusBadRequest)
			return
		}
		err = s.view.ShowInfoAt(index)
	case r.PostForm.Has("marker"):
		var id uint64
		if bindErr := bindPathParam("marker", r.PostForm.Get("marker"), &id); bindErr != nil {
			http.Error(w, "invalid marker", http.StatusBadRequest)
			return
		}
		err = s.view.ShowInfo(mapview.MarkerID(id))
	case r.PostForm.Has("center"):
		err = s.view.ShowCenterInfo()
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	// A blank query or a stale click leaves the view unchanged; the page shows it as is.
	if err != nil && !errors.Is(err, domain.ErrEmptyQuery) && !errors.Is(err, domain.ErrSuperseded) &&
		!errors.Is(err, domain.ErrPlaceNotFound) && !errors.Is(err, domain.ErrMarkerNotFound) {
		logpkg.FromContextOr(r.Context(), s.logger).Error("page action", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
