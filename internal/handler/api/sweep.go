package api

import (
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

// SweepHandler runs an expiry sweep immediately.
func SweepHandler(runner port.SweepRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := runner.RunOnce(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Sweep failed", err)
			return
		}

		RespondJSON(w, http.StatusOK, res)
		logger.Infof(r.Context(), "✅  Manual sweep removed %d file(s)", res.Removed)
	}
}
