package domain

import "errors"

var (
	// ErrMissingToken is returned when a verify request carries no access token.
	ErrMissingToken = errors.New("missing access token")
	// ErrInvalidToken is returned when the access token does not match a known credential.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrMalformedRequest is returned when a verify request body cannot be decoded.
	ErrMalformedRequest = errors.New("malformed request")
)

// Error details sent to callers in ErrorResponse.Detail.
const (
	DetailMissingToken     = "Missing access_token in request body"
	DetailInvalidToken     = "Invalid access token"
	DetailMalformedRequest = "Malformed request body"
)

// VerifyRequest is the body of a token verification request.
type VerifyRequest struct {
	AccessToken string `json:"access_token"`
}

// VerifyResponse is the body returned for a valid access token.
// Field order is the wire order.
type VerifyResponse struct {
	Code      int        `json:"code"`
	Data      VerifyData `json:"data"`
	ExpiredAt string     `json:"expired_at"`
	Message   string     `json:"message"`
	Source    string     `json:"source"`
}

// VerifyData wraps the user block of a VerifyResponse.
type VerifyData struct {
	User VerifyUser `json:"user"`
}

// VerifyUser is the user block of a VerifyResponse.
type VerifyUser struct {
	UsersEmail string `json:"users_email"`
	UsersID    string `json:"users_id"`
	UsersName  string `json:"users_name"`
}

// Identity returns the user described by the response.
func (r VerifyResponse) Identity() Identity {
	return Identity{
		ID:    r.Data.User.UsersID,
		Name:  r.Data.User.UsersName,
		Email: r.Data.User.UsersEmail,
	}
}

// ErrorResponse is the body returned for any rejected request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
