package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_CountsByRouteAndCode(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/view", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	r.Post("/api/v1/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Post("/api/v1/markers/{id}/click", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK) // ignored
	})

	tests := []struct {
		method, path, route, code string
	}{
		{"GET", "/api/v1/view", "/api/v1/view", "200"},
		{"POST", "/api/v1/search", "/api/v1/search", "400"},
		{"POST", "/api/v1/markers/3/click", "/api/v1/markers/{id}/click", "404"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			counter := httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.code)
			before := testutil.ToFloat64(counter)

			serve(r, tc.method, tc.path)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("requests_total{%s %s %s} delta = %v, want 1", tc.method, tc.route, tc.code, got)
			}
		})
	}
}

func TestMiddleware_PathParamsShareOneLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/v1/places/{index}/select", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := httpRequestsTotal.WithLabelValues("POST", "/api/v1/places/{index}/select", "200")
	before := testutil.ToFloat64(counter)
	for _, idx := range []string{"0", "7", "12"} {
		serve(r, "POST", "/api/v1/places/"+idx+"/select")
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("expected 3 requests under the route pattern, got %v", got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})

	counter := httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	serve(r, "GET", "/wp-admin/setup.php")

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected unmatched 404 to be counted once, got %v", got)
	}
}

func TestMiddleware_TimesPlainRequests(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	serve(r, "GET", "/health")

	if n := testutil.CollectAndCount(httpRequestDuration, "nearby_http_request_duration_seconds"); n == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_EventStream(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	var during float64
	r.Get("/api/v1/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: x\n\n"))
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("flush through middleware: %v", err)
		}
		during = testutil.ToFloat64(httpOpenStreams)
	})

	before := testutil.ToFloat64(httpOpenStreams)
	series := testutil.CollectAndCount(httpRequestDuration)
	rr := serve(r, "GET", "/api/v1/events")

	if !rr.Flushed {
		t.Error("expected recorder to be flushed")
	}
	if during != before+1 {
		t.Errorf("open streams during request = %v, want %v", during, before+1)
	}
	if after := testutil.ToFloat64(httpOpenStreams); after != before {
		t.Errorf("open streams after request = %v, want %v", after, before)
	}
	if n := testutil.CollectAndCount(httpRequestDuration); n != series {
		t.Errorf("event stream must not be timed: %d duration series, want %d", n, series)
	}
}
