package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInternshipNotFound = errors.New("internship not found")

	// Chat pipeline: the only place a model gateway failure is user-visible.
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrMisconfigured      = errors.New("AI API key missing")
	ErrServiceUnavailable = errors.New("AI service unavailable")

	// Structured-output parsing. Callers of the best-effort pipelines
	// substitute an empty/canned result instead of propagating this.
	ErrMalformedOutput = errors.New("model output does not match the required format")

	// Code execution proxy.
	ErrUnsupportedLanguage = errors.New("language not supported")
	ErrUpstream            = errors.New("external compiler service failed")
	ErrExecTimeout         = errors.New("compiler request timed out")
)
