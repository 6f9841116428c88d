package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkrupp/gys-mockauth/internal/domain"
)

// ContentTypeJSON is the media type of every JSON response.
const ContentTypeJSON = "application/json"

// WriteJSON writes v as the JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}

// WriteError writes a domain.ErrorResponse carrying detail.
func WriteError(w http.ResponseWriter, status int, detail string) error {
	return WriteJSON(w, status, domain.ErrorResponse{Detail: detail})
}

// WriteStatusError writes a domain.ErrorResponse whose detail is the status text.
func WriteStatusError(w http.ResponseWriter, status int) error {
	return WriteError(w, status, http.StatusText(status))
}
