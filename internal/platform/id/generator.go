package id

import "github.com/google/uuid"

// Generator creates opaque identifiers for runs and requests.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Static always returns the same id. Useful in tests.
type Static string

func (s Static) NewID() string {
	return string(s)
}
