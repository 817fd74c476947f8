package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind buckets an error for policy decisions: retry, redirect, toast copy.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindAPI        Kind = "api"
	KindUnknown    Kind = "unknown"
)

// Error is the normalized shape every failed request resolves to. Status 0
// means the request never produced a response (DNS failure, timeout, refused
// connection).
type Error struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Kind classifies the error from its HTTP status.
func (e *Error) Kind() Kind {
	switch {
	case e.Status == 0:
		return KindNetwork
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return KindAuth
	case e.Status == http.StatusUnprocessableEntity:
		return KindValidation
	case e.Status >= 400:
		return KindAPI
	}
	return KindUnknown
}

// Retryable reports whether retrying the request can plausibly succeed:
// network failures and 5xx responses only.
func (e *Error) Retryable() bool {
	return e.Status == 0 || e.Status >= 500
}

// Humanize returns the user-facing message for the error.
func (e *Error) Humanize() string {
	switch e.Status {
	case http.StatusBadRequest:
		return nonEmpty(e.Message, "Bad request. Please check your input.")
	case http.StatusUnauthorized:
		return "You are not authenticated. Please log in."
	case http.StatusForbidden:
		return "You do not have permission to perform this action."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusUnprocessableEntity:
		return nonEmpty(e.Message, "Validation failed. Please check your input.")
	case http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	case http.StatusServiceUnavailable:
		return "Service temporarily unavailable. Please try again later."
	case 0:
		return "Network error. Please check your connection and try again."
	}
	return nonEmpty(e.Message, "An unexpected error occurred.")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// ErrAuthRequired is returned by operations that need an authenticated
// session before any request is issued.
var ErrAuthRequired = &Error{Status: http.StatusUnauthorized, Message: "Authentication required"}

// Classify resolves any error to a Kind; non-API errors are unknown.
func Classify(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindUnknown
}

// IsRetryable is the default retry condition.
func IsRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// ValidationErrors extracts the field-keyed message map from a 422 error.
func ValidationErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind() == KindValidation {
		return apiErr.Fields
	}
	return nil
}

// Humanize returns a user-facing message for any error.
func Humanize(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Humanize()
	}
	if err != nil {
		return err.Error()
	}
	return "An unexpected error occurred."
}
