// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrOperatorNotFound is returned when an operator cannot be found by email or ID.
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrEmailAlreadyExists is returned when attempting to create an operator with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
