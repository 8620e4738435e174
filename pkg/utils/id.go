package utils

import "github.com/google/uuid"

// NewID generates a fresh UUIDv4 string used as primary key for all entities.
func NewID() string { return uuid.NewString() }
