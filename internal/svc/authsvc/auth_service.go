package authsvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkrupp/gys-mockauth/internal/domain"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
)

// AuthService verifies access tokens and builds the canned verify response.
// It holds no mutable state and is safe for concurrent use.
type AuthService struct {
	Config    AuthConfig
	Validator TokenValidator
}

// NewAuthService creates an AuthService backed by a StaticTokenValidator.
// The fixture file named in cfg, if any, is applied first.
func NewAuthService(ctx context.Context, cfg AuthConfig) (*AuthService, error) {
	log := logging.GetLogger("svc.authsvc.auth_service")

	cfg, err := cfg.WithFixtureFile()
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	log.With(logging.Group("fixture",
		"file", cfg.FixtureFile,
		"users_id", cfg.UserID,
		"users_name", cfg.UserName,
	)).DebugContext(ctx, "fixture loaded")

	return &AuthService{
		Config:    cfg,
		Validator: NewStaticTokenValidator(cfg.Token, cfg.Identity()),
	}, nil
}

// Authenticate checks req.AccessToken.
// Returns domain.ErrMissingToken for an empty token, the validator's error
// (domain.ErrInvalidToken for unknown tokens) otherwise, or the verify
// response for the resolved identity. It has no side effects.
func (s *AuthService) Authenticate(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResponse, error) {
	if req.AccessToken == "" {
		return domain.VerifyResponse{}, domain.ErrMissingToken
	}

	identity, err := s.Validator.Validate(ctx, req.AccessToken)
	if err != nil {
		return domain.VerifyResponse{}, fmt.Errorf("validate token: %w", err)
	}

	return domain.VerifyResponse{
		Code: http.StatusOK,
		Data: domain.VerifyData{
			User: domain.VerifyUser{
				UsersEmail: identity.Email,
				UsersID:    identity.ID,
				UsersName:  identity.Name,
			},
		},
		ExpiredAt: s.Config.ExpiredAt,
		Message:   s.Config.Message,
		Source:    s.Config.Source,
	}, nil
}
