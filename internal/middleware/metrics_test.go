package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/files/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("0123456789"))
	})

	before := counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/files/{id}", "206"))
	bytesBefore := counterValue(t, httpResponseBytes.WithLabelValues("/files/{id}"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.mp4", nil))

	if rec.Code != http.StatusPartialContent {
		t.Fatalf("status = %d; want 206", rec.Code)
	}
	if got := counterValue(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/files/{id}", "206")); got != before+1 {
		t.Errorf("requests counter = %v; want %v", got, before+1)
	}
	if got := counterValue(t, httpResponseBytes.WithLabelValues("/files/{id}")); got != bytesBefore+10 {
		t.Errorf("bytes counter = %v; want %v", got, bytesBefore+10)
	}
}

func TestMetricsResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newMetricsResponseWriter(rec)
	_, _ = rw.Write([]byte("x"))
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d; want 200", rw.statusCode)
	}
}
