package authsvc

import (
	"context"
	"crypto/hmac"

	"github.com/mkrupp/gys-mockauth/internal/domain"
)

// TokenValidator resolves an access token to the identity it belongs to.
// Implementations return domain.ErrInvalidToken for tokens they do not accept.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (domain.Identity, error)
}

// TokenValidatorFunc adapts a function to TokenValidator.
type TokenValidatorFunc func(ctx context.Context, token string) (domain.Identity, error)

// Validate implements TokenValidator.
func (f TokenValidatorFunc) Validate(ctx context.Context, token string) (domain.Identity, error) {
	return f(ctx, token)
}

// StaticTokenValidator accepts exactly one token.
// The comparison is byte-exact, case-sensitive and runs in constant time.
type StaticTokenValidator struct {
	token    []byte
	identity domain.Identity
}

var _ TokenValidator = (*StaticTokenValidator)(nil)

// NewStaticTokenValidator creates a validator resolving token to identity.
func NewStaticTokenValidator(token string, identity domain.Identity) *StaticTokenValidator {
	return &StaticTokenValidator{
		token:    []byte(token),
		identity: identity,
	}
}

// Validate implements TokenValidator.
func (v *StaticTokenValidator) Validate(_ context.Context, token string) (domain.Identity, error) {
	if len(v.token) == 0 || !hmac.Equal([]byte(token), v.token) {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return v.identity, nil
}
