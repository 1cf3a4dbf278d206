// Package services defines the business logic for operators, sources,
// requests, and distribution. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer; mapping
// to user-facing messages or HTTP status codes is performed at the handler
// layer. The taxonomy is:
//
//   - validation errors (empty/whitespace input, out-of-range values):
//     rejected before any mutation;
//   - not-found errors (referenced id does not exist): no mutation;
//   - conflict errors (duplicate source identifier, release of a request
//     that is not assigned);
//   - integrity errors (delete blocked by referencing requests).
package services

import "errors"

// Validation errors.
var (
	// ErrEmptyName is returned when an operator or source name is empty or
	// whitespace-only.
	ErrEmptyName = errors.New("name must not be empty or whitespace-only")

	// ErrEmptyIdentifier is returned when a source or user identifier is
	// empty or whitespace-only.
	ErrEmptyIdentifier = errors.New("identifier must not be empty or whitespace-only")

	// ErrEmptyMessage is returned when a request message is empty or
	// whitespace-only.
	ErrEmptyMessage = errors.New("message must not be empty or whitespace-only")

	// ErrInvalidMaxLoad is returned when an operator capacity is not a
	// positive integer.
	ErrInvalidMaxLoad = errors.New("max load limit must be a positive integer")

	// ErrWeightOutOfRange is returned when a configured weight falls outside
	// the [1,100] range.
	ErrWeightOutOfRange = errors.New("weight must be between 1 and 100")
)

// Not-found errors.
var (
	// ErrOperatorNotFound indicates that the referenced operator does not exist.
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrSourceNotFound indicates that the referenced source does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrRequestNotFound indicates that the referenced request does not exist.
	ErrRequestNotFound = errors.New("request not found")
)

// Conflict and integrity errors.
var (
	// ErrDuplicateIdentifier is returned when a source is created with an
	// identifier that already exists.
	ErrDuplicateIdentifier = errors.New("source identifier already exists")

	// ErrOperatorInUse is returned when deleting an operator that is still
	// referenced by requests.
	ErrOperatorInUse = errors.New("operator is referenced by existing requests")

	// ErrSourceInUse is returned when deleting a source that is still
	// referenced by requests.
	ErrSourceInUse = errors.New("source is referenced by existing requests")

	// ErrRequestNotAssigned is returned when releasing a request that is not
	// currently assigned to an operator.
	ErrRequestNotAssigned = errors.New("request is not assigned to an operator")
)
