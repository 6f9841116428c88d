// Package authclient is the consumer side of the token verify endpoint.
// Services that sit behind the mock auth service use it, usually through
// http.AuthorizingMiddleware, to resolve bearer tokens:
//
//	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: "http://mockauth:8080/auth"}, nil)
//	handler = http_.AuthorizingMiddleware(handler, client, log)
//
// The mockauth binary itself serves the endpoint and does not import it.
package authclient

import (
	"context"

	"github.com/mkrupp/gys-mockauth/internal/domain"
)

// AuthClient defines the interface for validating access tokens against a verify endpoint.
type AuthClient interface {
	// Validate checks if the given token is valid.
	// Returns the identity behind the token and true if the endpoint accepted it.
	// A rejected token yields false and no error; the error is reserved for
	// transport failures and unexpected answers.
	Validate(ctx context.Context, token string) (domain.Identity, bool, error)
}
