package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
	"github.com/fhuszti/tmpfiles-ms-go/internal/handler/api"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// WithFileID stashes the public file identifier: the {id} path segment with
// everything from its first "." dropped. Files are looked up by prefix, so
// no UUID syntax is enforced here.
func WithFileID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _, _ := strings.Cut(chi.URLParam(r, "id"), ".")
			if id == "" {
				api.WriteNotFound(w)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.FileIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithFileUUID requires {id} to be a canonical file UUID.
func WithFileUUID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "id")
			if raw == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil || len(raw) != 36 {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid UUID", raw), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.FileUUIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated callers lacking role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, _ := api_context.AuthRolesFromContext(r.Context())
			for _, got := range roles {
				if got == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			api.WriteError(w, http.StatusForbidden, "forbidden", nil)
		})
	}
}
