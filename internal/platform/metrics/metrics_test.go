package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/adopt/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/adopt/"+id, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/adopt/{petID}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests on route pattern, got %v", got)
	}
}

func TestHandler_ExposesBusinessCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.PetsAdded.Inc()
	m.Applications.WithLabelValues("submitted").Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "petadopt_pets_added_total 1") {
		t.Fatalf("missing pets_added_total in body:\n%s", body)
	}
	if !strings.Contains(body, `petadopt_applications_total{outcome="submitted"} 1`) {
		t.Fatalf("missing applications_total in body:\n%s", body)
	}
}
