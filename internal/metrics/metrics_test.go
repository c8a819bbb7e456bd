package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/clients/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/clients/{id}/edit", "404"))
	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients/"+id+"/edit", nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/clients/{id}/edit", "404"))

	if after-before != 2 {
		t.Errorf("expected 2 requests under one route label, got %v", after-before)
	}
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(logins.WithLabelValues("failure"))
	RecordLogin(false)
	if got := testutil.ToFloat64(logins.WithLabelValues("failure")) - before; got != 1 {
		t.Errorf("failure count delta = %v", got)
	}
}
