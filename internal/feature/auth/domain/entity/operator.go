// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Operator represents a store operator allowed to control shelf scans.
// It contains authentication credentials and metadata for account management.
type Operator struct {
	// ID is the unique identifier for the operator.
	ID uint `gorm:"primaryKey"`

	// Email is the operator's email address used for authentication.
	// It must be unique across all operators.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the operator.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the operator was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the operator was last updated.
	UpdatedAt time.Time
}
