package spells

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// DefaultMaxEntries bounds the in-memory cache when no size is configured
const DefaultMaxEntries = 1024

// inMemoryRepository implements Repository with a bounded map. Spells are
// immutable once assembled, so the stored pointer is handed out as is.
type inMemoryRepository struct {
	mu         sync.RWMutex
	spells     map[string]*spell.Spell
	order      []string // insertion order, oldest first
	maxEntries int
}

// NewInMemoryRepository creates an in-memory cache holding at most
// maxEntries spells. The oldest entry is evicted first.
func NewInMemoryRepository(maxEntries int) Repository {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &inMemoryRepository{
		spells:     make(map[string]*spell.Spell),
		maxEntries: maxEntries,
	}
}

// Get retrieves a spell by key
func (r *inMemoryRepository) Get(ctx context.Context, key string) (*spell.Spell, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("cache key cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.spells[key]
	if !exists {
		return nil, dnderr.NotFoundf("spell not cached: %s", key)
	}

	return s, nil
}

// Set stores a spell, evicting the oldest entry when full
func (r *inMemoryRepository) Set(ctx context.Context, key string, s *spell.Spell) error {
	if key == "" {
		return dnderr.InvalidArgument("cache key cannot be empty")
	}
	if s == nil {
		return errors.New("spell cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.spells[key]; !exists {
		for len(r.order) >= r.maxEntries {
			oldest := r.order[0]
			r.order = r.order[1:]
			delete(r.spells, oldest)
		}
		r.order = append(r.order, key)
	}

	r.spells[key] = s
	return nil
}

// Len returns the number of cached spells
func (r *inMemoryRepository) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.spells), nil
}

// Clear removes every cached spell
func (r *inMemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spells = make(map[string]*spell.Spell)
	r.order = nil
	return nil
}
