// Package services implements the application's use cases on top of the
// repository/unit-of-work layer. Each operation opens its own unit of work,
// stages mutations through the typed repositories, and commits them in one
// transaction.
package services

import "errors"

var (
	// ErrNotFound means the requested entity does not exist or is
	// soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule would be violated (duplicate
	// category name, taken username or email).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is returned by Login for a bad username/email
	// or password. The message never says which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput means a value failed a domain rule the DTO layer
	// could not check (e.g. an unknown order status from an internal
	// caller).
	ErrInvalidInput = errors.New("invalid input")
)
