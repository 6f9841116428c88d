package authsvc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkrupp/gys-mockauth/internal/domain"
)

// ErrEmptyToken is returned when the configured access token is empty.
var ErrEmptyToken = errors.New("configured access token is empty")

// Canned fixture values. Each may be overridden through AuthConfig.
const (
	DefaultToken     = "abcdefghijk"
	DefaultUserID    = "$2y$12$82Kya1aakS8zguQtOEKDMuKm1FGDan/6znaEa0X/y2w6bYxvJZ8u"
	DefaultUserName  = "Mock User"
	DefaultUserEmail = "mockuser@gyssteel.com"
	DefaultExpiredAt = "2025-09-11 11:53:28.640"
	DefaultMessage   = "Token is valid."
	DefaultSource    = "Token Validation"
)

// AuthConfig contains the accepted access token and the canned response it unlocks.
// The env defaults mirror the Default* constants.
type AuthConfig struct {
	// Token is the only access token accepted
	Token string `env:"TOKEN" default:"abcdefghijk" yaml:"token"`

	// UserID is echoed back as users_id. It is opaque and never interpreted.
	UserID    string `env:"USER_ID" default:"$2y$12$82Kya1aakS8zguQtOEKDMuKm1FGDan/6znaEa0X/y2w6bYxvJZ8u" yaml:"user_id"`
	UserName  string `env:"USER_NAME" default:"Mock User" yaml:"user_name"`
	UserEmail string `env:"USER_EMAIL" default:"mockuser@gyssteel.com" yaml:"user_email"`

	// ExpiredAt is returned verbatim; it is not computed or checked
	ExpiredAt string `env:"EXPIRED_AT" default:"2025-09-11 11:53:28.640" yaml:"expired_at"`
	Message   string `env:"MESSAGE" default:"Token is valid." yaml:"message"`
	Source    string `env:"SOURCE" default:"Token Validation" yaml:"source"`

	// FixtureFile optionally names a YAML file whose keys override the fields above
	FixtureFile string `env:"FIXTURE_FILE" default:"" yaml:"-"`
}

// DefaultAuthConfig returns the built-in fixture.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Token:     DefaultToken,
		UserID:    DefaultUserID,
		UserName:  DefaultUserName,
		UserEmail: DefaultUserEmail,
		ExpiredAt: DefaultExpiredAt,
		Message:   DefaultMessage,
		Source:    DefaultSource,
	}
}

// WithFixtureFile returns cfg with the keys of cfg.FixtureFile applied.
// Keys missing from the file keep their current value; unknown keys are an error.
func (cfg AuthConfig) WithFixtureFile() (AuthConfig, error) {
	if cfg.FixtureFile == "" {
		return cfg, nil
	}

	file, err := os.Open(cfg.FixtureFile)
	if err != nil {
		return AuthConfig{}, fmt.Errorf("open fixture file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return AuthConfig{}, fmt.Errorf("decode fixture file: %w", err)
	}

	return cfg, nil
}

// Identity returns the user the configured token resolves to.
func (cfg AuthConfig) Identity() domain.Identity {
	return domain.Identity{
		ID:    cfg.UserID,
		Name:  cfg.UserName,
		Email: cfg.UserEmail,
	}
}

// Validate reports whether cfg can back an AuthService.
func (cfg AuthConfig) Validate() error {
	if cfg.Token == "" {
		return ErrEmptyToken
	}

	return nil
}
