package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		invalidInputErr    InvalidInputError
		invalidScheduleErr InvalidScheduleError
		pastInstantErr     PastInstantError
		unavailableErr     DataUnavailableError
	)

	switch {
	case errors.As(err, &invalidInputErr):
		return http.StatusBadRequest
	case errors.As(err, &invalidScheduleErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pastInstantErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableErr):
		return http.StatusNotFound
	}

	switch err {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// InvalidInputError is an error type for an unparseable or missing
// numeric or date field. Caught at input time, field-level, non-blocking.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for field (%s): %s", e.Field, e.Reason)
}

// InvalidScheduleError is an error type for a violated schedule ordering
// invariant. Blocks submission and is surfaced as a user-facing message.
type InvalidScheduleError struct {
	Reason string
}

func (e InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// DataUnavailableError is an error type for a price or token lookup miss.
// It degrades optional display affordances rather than blocking a flow.
type DataUnavailableError struct {
	Resource string
	Key      string
}

func (e DataUnavailableError) Error() string {
	return fmt.Sprintf("%s for (%s) is not available", e.Resource, e.Key)
}

// PastInstantError is an error type for a schedule field that has lapsed
// between form composition and submission.
type PastInstantError struct {
	Field   string
	Instant time.Time
}

func (e PastInstantError) Error() string {
	return fmt.Sprintf("schedule field (%s) with value (%s) is in the past", e.Field, e.Instant.Format(time.RFC3339))
}
