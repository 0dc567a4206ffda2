package models

import (
	"github.com/google/uuid"
)

// NewID returns a fresh document identifier.
func NewID() string {
	return uuid.NewString()
}

func newID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}
