package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// ErrorResponse is the wire shape of every error: a single detail string.
// Auth failures share one generic message so responses cannot be used to
// enumerate accounts, and round failures never reveal whether the round was
// unknown, expired or replayed.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// httpError combines an HTTP status code with a response detail
type httpError struct {
	status int
	detail string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.detail
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: he.detail})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusBadRequest, "Username already exists"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusBadRequest, "Invalid credentials"}
	case errors.Is(err, model.ErrInvalidRound):
		return &httpError{http.StatusBadRequest, "Invalid question_id"}
	case errors.Is(err, model.ErrSourceUnavailable):
		return &httpError{http.StatusBadGateway, "Puzzle source unavailable"}
	case errors.Is(err, model.ErrLedgerUnavailable):
		return &httpError{http.StatusInternalServerError, "Could not save score"}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User not found"}
	default:
		// Covers model.ErrMalformedHash and unexpected failures; the
		// detail never leaks internals
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given detail
func NewInvalidRequestError(detail string) error {
	return &httpError{http.StatusBadRequest, detail}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
