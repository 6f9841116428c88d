package http

import (
	"net/http"
	"strings"

	context_ "github.com/mkrupp/gys-mockauth/internal/infra/context"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
	"github.com/mkrupp/gys-mockauth/internal/svc/authsvc/authclient"
)

// AuthorizationHeader carries the bearer token checked by AuthorizingMiddleware.
const AuthorizationHeader = "Authorization"

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
// The scheme is case-insensitive. Returns false if no token is present.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// AuthorizingMiddleware creates middleware that validates bearer tokens with authClient.
// Requests without a token get 400, rejected tokens get 401 and validation
// failures get 502. On success the identity is added to the request context.
// It guards the handlers of downstream services; the verify endpoint itself is
// public and does not use it.
func AuthorizingMiddleware(
	next http.Handler,
	authClient authclient.AuthClient,
	log logging.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r.Header.Get(AuthorizationHeader))
		if !ok {
			log.WarnContext(r.Context(), "no token provided")
			_ = WriteStatusError(w, http.StatusBadRequest)

			return
		}

		identity, ok, err := authClient.Validate(r.Context(), token)
		if err != nil {
			log.ErrorContext(r.Context(), "validate token failed", "error", err)
			_ = WriteStatusError(w, http.StatusBadGateway)

			return
		} else if !ok {
			log.WarnContext(r.Context(), "invalid token")
			_ = WriteStatusError(w, http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r.WithContext(context_.WithIdentity(r.Context(), identity)))
	})
}
