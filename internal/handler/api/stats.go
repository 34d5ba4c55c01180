package api

import (
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

func StatsHandler(svc port.StatsReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, svc.Stats(r.Context()))
	}
}
