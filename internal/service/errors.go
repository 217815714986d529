package service

import "errors"

// Error kinds the request boundary maps to HTTP status codes. Services
// wrap these with context via fmt.Errorf("%w: ..."), so handlers classify
// with errors.Is and surface the message verbatim.
var (
	// ErrValidation covers missing or malformed required fields and
	// invalid enum values.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers lookups that match nothing the caller may see,
	// including invitations that already reached a terminal status.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a respond call reaches an invitation
	// whose deadline has passed. Detection transitions the stored status
	// to expired as a side effect.
	ErrExpired = errors.New("invitation has expired")

	// ErrUnauthorized covers ownership mismatches: the resource exists but
	// belongs to someone else.
	ErrUnauthorized = errors.New("not allowed")
)
