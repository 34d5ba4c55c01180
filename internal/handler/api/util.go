package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
)

// MsgFileNotFound is the body of every 404 on a file route.
const MsgFileNotFound = "File not found or expired"

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else if status >= http.StatusInternalServerError {
		logger.Error(ctx, "❌  "+msg)
	} else {
		logger.Debug(ctx, "❌  "+msg, "status", status)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func WriteNotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, MsgFileNotFound, nil)
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}
