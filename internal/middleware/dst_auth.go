package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
	"github.com/fhuszti/tmpfiles-ms-go/internal/handler/api"
)

const (
	dstIssuer   = "core"
	dstAudience = "tmpfiles"
	dstIatSkew  = 30 * time.Second
)

var (
	errBadIssuer   = errors.New("bad issuer")
	errBadAudience = errors.New("bad audience")
	errExpired     = errors.New("token expired")
	errFutureIat   = errors.New("invalid iat")
	errMissingSub  = errors.New("missing sub")
)

// dstClaims is the payload core signs for operators of this service.
type dstClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// verify checks everything signature validation does not.
func (c *dstClaims) verify(now time.Time) error {
	switch {
	case !c.VerifyIssuer(dstIssuer, true):
		return errBadIssuer
	case !c.VerifyAudience(dstAudience, true):
		return errBadAudience
	case !c.VerifyExpiresAt(now, true):
		return errExpired
	case c.IssuedAt != nil && c.IssuedAt.After(now.Add(dstIatSkew)):
		return errFutureIat
	case c.Subject == "":
		return errMissingSub
	}
	return nil
}

var authNow = time.Now

// WithDSTAuth guards the admin routes with a short-lived RS256 Bearer JWT
// issued by core for the tmpfiles audience. An empty key disables the check.
func WithDSTAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid core RSA public key: %v", err))
	}

	// time-based claims are checked by verify, with skew on iat
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	keyFunc := func(*jwt.Token) (interface{}, error) { return pubKey, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			claims := &dstClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", err)
				return
			}
			if err := claims.verify(authNow()); err != nil {
				api.WriteError(w, http.StatusUnauthorized, err.Error(), nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, claims.Subject)
			ctx = context.WithValue(ctx, api_context.AuthRolesKey, claims.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
