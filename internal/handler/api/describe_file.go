package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
)

func DescribeFileHandler(renderer port.HTTPRenderer, svc port.FileDescriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.FileUUIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderDescribeFile(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, file.ErrNotFound) {
				WriteNotFound(w)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get file details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, no-cache")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Debugf(r.Context(), "✅  Details of file #%s not modified", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
	}
}
