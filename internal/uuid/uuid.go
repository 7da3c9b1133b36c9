// uuid simple generator that allows mocking
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct {
	prefix string
}

// New generates a new UUID string, prefixed when the generator has one
func (g *GoogleUUIDGenerator) New() string {
	if g.prefix == "" {
		return uuid.NewString()
	}
	return g.prefix + "_" + uuid.NewString()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// NewGenerator creates a generator producing "<prefix>_<uuid>" identifiers
func NewGenerator(prefix string) *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{prefix: prefix}
}
