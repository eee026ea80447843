package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/topup-storefront/pkg/ledger"
	"github.com/chris/topup-storefront/pkg/settings"
	"github.com/chris/topup-storefront/pkg/storefront"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

// Decode reads a JSON request body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// Error maps a domain error to its status code. Validation errors carry
// their own user-facing message; anything else is a 500.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		Message(w, status, fmt.Sprintf("Internal error: %v", err))
		return
	}
	Message(w, status, err.Error())
}

func Status(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUserNotFound),
		errors.Is(err, storefront.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateEmail),
		errors.Is(err, storefront.ErrOrderNotPending):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidCredentials),
		errors.Is(err, storefront.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrBanned):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidInput),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, storefront.ErrInvalidOrder),
		errors.Is(err, settings.ErrInvalidAgencyURL),
		errors.Is(err, settings.ErrInvalidBanner),
		errors.Is(err, settings.ErrInvalidContact),
		errors.Is(err, settings.ErrInvalidApp):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
