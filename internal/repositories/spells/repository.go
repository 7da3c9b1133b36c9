package spells

//go:generate mockgen -destination=mock/mock_repository.go -package=mockspells -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
)

// Repository caches assembled spells by their parameter key
type Repository interface {
	// Get returns the spell stored under key, or a not found error
	Get(ctx context.Context, key string) (*spell.Spell, error)

	// Set stores a spell under key
	Set(ctx context.Context, key string, s *spell.Spell) error

	// Len returns the number of cached spells
	Len(ctx context.Context) (int, error)

	// Clear removes every cached spell
	Clear(ctx context.Context) error
}
