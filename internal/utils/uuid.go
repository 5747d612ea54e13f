package utils

import "github.com/google/uuid"

// IDGenerator produces unique opaque identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 identifiers, falling back to
// random UUIDv4 when the clock source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// RandomToken returns a random UUIDv4 string, suitable for unguessable
// values such as OAuth state.
func RandomToken() string {
	return uuid.NewString()
}
