package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/ranchgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidCount   = "INVALID_COUNT"
	CodeInvalidIndex   = "INVALID_INDEX"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeTradeNotFound  = "TRADE_NOT_FOUND"
	CodePlayerExists   = "PLAYER_EXISTS"
	CodeSelfTrade      = "SELF_TRADE"
	CodeNegativePoints = "NEGATIVE_POINTS"
	CodeKeyImmutable   = "KEY_IMMUTABLE"
	CodeNameImmutable  = "USERNAME_IMMUTABLE"
	CodeConfigError    = "CONFIGURATION_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTradeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTradeNotFound, "Trade not found"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player already exists"}}
	case errors.Is(err, model.ErrSelfTrade):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfTrade, "A player cannot trade with themselves"}}
	case errors.Is(err, model.ErrInvalidCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCount, "Count must be greater than zero and within the bootstrap limit"}}
	case errors.Is(err, model.ErrInvalidIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidIndex, "Index must be a non-negative integer"}}
	case errors.Is(err, model.ErrNegativePoints):
		return &httpError{http.StatusConflict, APIError{CodeNegativePoints, "Points cannot go below zero"}}
	case errors.Is(err, model.ErrKeyImmutable):
		return &httpError{http.StatusConflict, APIError{CodeKeyImmutable, "Player key cannot be changed"}}
	case errors.Is(err, model.ErrUsernameImmutable):
		return &httpError{http.StatusConflict, APIError{CodeNameImmutable, "Player username cannot be changed"}}

	// A ranch without a trait is a deployment defect, not a client mistake
	case errors.Is(err, model.ErrUnknownRanch):
		return &httpError{http.StatusInternalServerError, APIError{CodeConfigError, "Ranch configuration error"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
