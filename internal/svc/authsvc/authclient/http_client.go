package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkrupp/gys-mockauth/internal/domain"
	context_ "github.com/mkrupp/gys-mockauth/internal/infra/context"
	"github.com/mkrupp/gys-mockauth/internal/infra/logging"
)

const (
	TraceIDHeader     = "X-Request-ID"
	ContentTypeHeader = "Content-Type"
)

// ErrUnexpectedStatus is returned when the endpoint answers with a status
// other than 200, 400 or 401.
var ErrUnexpectedStatus = errors.New("unexpected status")

// HTTPClientConfig holds configuration for the HTTP auth client.
type HTTPClientConfig struct {
	// AuthURL is the verify endpoint tokens are posted to
	AuthURL string `env:"AUTH_URL" default:"http://localhost:8080/auth"`
	// Timeout is the request timeout in seconds for the default client
	Timeout int64 `env:"TIMEOUT" default:"5"`
}

// HTTPClient implements AuthClient by posting {"access_token": ...} to AuthURL.
type HTTPClient struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        HTTPClientConfig
}

var _ AuthClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient with the given configuration.
// If httpClient is nil, a client with cfg.Timeout is used.
func NewHTTPClient(
	cfg HTTPClientConfig,
	httpClient *http.Client,
) *HTTPClient {
	if httpClient == nil {
		//nolint:exhaustruct
		httpClient = &http.Client{Timeout: time.Duration(cfg.Timeout * int64(time.Second))}
	}

	return &HTTPClient{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.authsvc.http_client"),
		cfg:        cfg,
	}
}

// Validate implements AuthClient.Validate.
func (c *HTTPClient) Validate(ctx context.Context, token string) (_ domain.Identity, _ bool, err error) {
	defer func() {
		if err != nil {
			c.log.ErrorContext(ctx, "validate token failed", "error", err)
		}
	}()

	body, err := json.Marshal(domain.VerifyRequest{AccessToken: token})
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set(ContentTypeHeader, "application/json")

	if traceID, ok := context_.TraceIDFromContext(ctx); ok {
		req.Header.Set(TraceIDHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var verified domain.VerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&verified); err != nil {
			return domain.Identity{}, false, fmt.Errorf("decode response: %w", err)
		}

		return verified.Identity(), true, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		var rejected domain.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<12)).Decode(&rejected)

		c.log.DebugContext(ctx, "token rejected", "status", resp.StatusCode, "detail", rejected.Detail)

		return domain.Identity{}, false, nil
	default:
		return domain.Identity{}, false, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
}
