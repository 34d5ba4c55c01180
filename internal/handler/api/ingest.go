package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	"github.com/fhuszti/tmpfiles-ms-go/internal/validation"
)

const maxIngestBody = 64 * 1024

type IngestAcceptedResponse struct {
	Status    string `json:"status"`
	ObjectKey string `json:"object_key"`
}

// IngestStagedHandler queues a staged object for ingestion.
func IngestStagedHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req port.StagedIngestInput
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		if err := dispatcher.EnqueueIngestStaged(r.Context(), req); err != nil {
			if errors.Is(err, file.ErrQueueDisabled) {
				WriteError(w, http.StatusServiceUnavailable, "ingest queue is not configured", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not queue ingestion", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, IngestAcceptedResponse{Status: "queued", ObjectKey: req.ObjectKey})
		logger.Infof(r.Context(), "✅  Queued ingestion of staged object %q", req.ObjectKey)
	}
}
