package domain

import "errors"

// Sentinel errors shared across services and repositories. The delivery layer
// matches these with errors.Is and maps them to HTTP status codes.
var (
	// ErrNotFound is returned when an entity or relation does not exist, or
	// when an event exists but is not visible to the requesting actor.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an authenticated actor lacks the role or
	// ownership required for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned when the operation requires a logged-in user.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidInput is returned for malformed input (end before start,
	// unknown modality, missing host, and similar).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyRSVPed signals that the user already has an RSVP for the event.
	// It is a soft, informational state rather than a hard failure.
	ErrAlreadyRSVPed = errors.New("already RSVPed")

	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already in use")
	ErrDuplicateSlug     = errors.New("organization slug already in use")
)
