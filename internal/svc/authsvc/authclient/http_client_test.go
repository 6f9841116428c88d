package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/gys-mockauth/internal/domain"
	context_ "github.com/mkrupp/gys-mockauth/internal/infra/context"
	"github.com/mkrupp/gys-mockauth/internal/svc/authsvc"
	"github.com/mkrupp/gys-mockauth/internal/svc/authsvc/authclient"
)

func setupAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, err := authsvc.NewAuthService(context.Background(), authsvc.DefaultAuthConfig())
	require.NoError(t, err)

	server := httptest.NewServer(authsvc.NewHTTPTransport(svc, authsvc.HTTPTransportConfig{}))
	t.Cleanup(server.Close)

	return server
}

func TestHTTPClient_Validate(t *testing.T) {
	t.Parallel()

	server := setupAuthServer(t)
	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: server.URL + "/auth"}, server.Client())

	tests := []struct {
		name         string
		token        string
		wantOK       bool
		wantIdentity domain.Identity
	}{
		{
			name:   "valid token",
			token:  authsvc.DefaultToken,
			wantOK: true,
			wantIdentity: domain.Identity{
				ID:    authsvc.DefaultUserID,
				Name:  authsvc.DefaultUserName,
				Email: authsvc.DefaultUserEmail,
			},
		},
		{
			name:  "invalid token",
			token: "nope",
		},
		{
			name:  "empty token",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity, ok, err := client.Validate(context.Background(), tt.token)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdentity, identity)
		})
	}
}

func TestHTTPClient_ValidateUnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: server.URL}, server.Client())

	_, ok, err := client.Validate(context.Background(), authsvc.DefaultToken)

	assert.False(t, ok)
	assert.ErrorIs(t, err, authclient.ErrUnexpectedStatus)
}

func TestHTTPClient_ValidateUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: url, Timeout: 1}, nil)

	_, ok, err := client.Validate(context.Background(), authsvc.DefaultToken)

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestHTTPClient_ValidateRequest(t *testing.T) {
	t.Parallel()

	var (
		gotTraceID     string
		gotContentType string
		gotRequest     domain.VerifyRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = r.Header.Get(authclient.TraceIDHeader)
		gotContentType = r.Header.Get(authclient.ContentTypeHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)

		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{AuthURL: server.URL}, server.Client())
	ctx := context_.WithTraceID(context.Background(), "trace-42")

	_, ok, err := client.Validate(ctx, "some-token")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "trace-42", gotTraceID)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "some-token", gotRequest.AccessToken)
}
