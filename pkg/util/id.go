package util

import "github.com/google/uuid"

// NewID returns a random identifier for store records.
func NewID() string {
	return uuid.NewString()
}
