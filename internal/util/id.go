// Package util holds small internal helpers that have not earned a public
// API commitment.
package util

import "github.com/google/uuid"

// NewID returns a new random unique identifier suitable for turn and
// session ids.
func NewID() string {
	return uuid.NewString()
}
