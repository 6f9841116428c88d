package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkrupp/gys-mockauth/internal/domain"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
	http_ "github.com/mkrupp/gys-mockauth/internal/infra/transport/http"
)

// Fallbacks for zero HTTPTransportConfig fields.
const (
	DefaultMaxBodySize = 1 << 20
	DefaultVersion     = "dev"
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig

	// MaxBodySize caps verify request bodies in bytes
	MaxBodySize int64 `env:"MAX_BODY_SIZE" default:"1048576"`

	// Version is reported by the health endpoint. Set by the binary, not the environment.
	Version string
}

// HTTPTransport handles HTTP requests for the authentication service.
// It provides the token verify endpoint and a health check.
type HTTPTransport struct {
	authSvc *AuthService
	log     logging.Logger
	cfg     HTTPTransportConfig
	router  chi.Router
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
// Routes:
// - POST /auth: verify an access token
// - GET /health: liveness check.
func NewHTTPTransport(
	authSvc *AuthService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	ht := &HTTPTransport{
		authSvc: authSvc,
		log:     logging.GetLogger("svc.authsvc.http_transport"),
		cfg:     cfg,
	}

	router := chi.NewRouter()
	router.Post("/auth", ht.HandleAuthenticate)
	router.Get("/health", ht.HandleHealth)
	router.NotFound(statusHandler(http.StatusNotFound))
	router.MethodNotAllowed(statusHandler(http.StatusMethodNotAllowed))

	ht.router = router

	return ht
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = http_.WriteStatusError(w, status)
	}
}

// ServeHTTP implements http.Handler.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ht.router.ServeHTTP(w, r)
}

// HandleAuthenticate processes token verify requests.
// Expects a JSON body {"access_token": "..."}.
// Returns the verify response on success or {"detail": "..."} otherwise.
func (ht *HTTPTransport) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleAuthenticate(w, r)
}

func (ht *HTTPTransport) handleAuthenticate(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		switch {
		case err == nil:
			log.DebugContext(ctx, "token verified")
		case isRejection(err):
			log.InfoContext(ctx, "token rejected", "error", err)
		default:
			log.ErrorContext(ctx, "token verification failed", "error", err)
		}
	}(r.Context())

	// Parse body
	req, err := decodeVerifyRequest(http.MaxBytesReader(w, r.Body, ht.cfg.MaxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			_ = http_.WriteStatusError(w, http.StatusRequestEntityTooLarge)
		} else {
			_ = http_.WriteError(w, http.StatusBadRequest, domain.DetailMalformedRequest)
		}

		return fmt.Errorf("decode request: %w", err)
	}

	// Verify token
	resp, err := ht.authSvc.Authenticate(r.Context(), req)
	if err != nil {
		status, detail := errorStatus(err)
		_ = http_.WriteError(w, status, detail)

		return fmt.Errorf("authenticate: %w", err)
	}

	if err := http_.WriteJSON(w, http.StatusOK, resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}

// accessTokenKey is matched exactly; encoding/json would also accept
// differently cased keys when decoding into a struct.
const accessTokenKey = "access_token"

var errTrailingData = errors.New("trailing data after request object")

// decodeVerifyRequest reads a VerifyRequest. An empty body, a missing key and a
// null token all decode to a request without token. Anything after the request
// object other than whitespace makes the body malformed.
func decodeVerifyRequest(body io.Reader) (domain.VerifyRequest, error) {
	dec := json.NewDecoder(body)

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.VerifyRequest{}, nil
		}

		return domain.VerifyRequest{}, errors.Join(domain.ErrMalformedRequest, err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}

		return domain.VerifyRequest{}, errors.Join(domain.ErrMalformedRequest, err)
	}

	raw, ok := fields[accessTokenKey]
	if !ok {
		return domain.VerifyRequest{}, nil
	}

	var token *string
	if err := json.Unmarshal(raw, &token); err != nil {
		return domain.VerifyRequest{}, errors.Join(domain.ErrMalformedRequest, fmt.Errorf("%s: %w", accessTokenKey, err))
	}

	if token == nil {
		return domain.VerifyRequest{}, nil
	}

	return domain.VerifyRequest{AccessToken: *token}, nil
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrMissingToken) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrMalformedRequest)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusBadRequest, domain.DetailMissingToken
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.DetailInvalidToken
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// HandleHealth reports liveness and the running version.
func (ht *HTTPTransport) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := http_.WriteJSON(w, http.StatusOK, domain.HealthResponse{
		Ping:    "pong",
		Version: ht.cfg.Version,
	}); err != nil {
		ht.log.ErrorContext(r.Context(), "write health failed", "error", err)
	}
}
