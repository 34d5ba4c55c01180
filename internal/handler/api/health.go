package api

import "net/http"

type HealthResponse struct {
	Status    string `json:"status"`
	UploadDir string `json:"upload_dir"`
}

func HealthHandler(uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok", UploadDir: uploadDir})
	}
}
