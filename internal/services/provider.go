package services

import (
	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/dice"
	"github.com/KirkDiggler/bloodbond/internal/events"
	"github.com/KirkDiggler/bloodbond/internal/repositories/spells"
	spellService "github.com/KirkDiggler/bloodbond/internal/services/spell"
)

// Provider holds all service instances
type Provider struct {
	SpellService spellService.Service
	EventBus     *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Dataset         *data.Dataset
	SpellRepository spells.Repository
	DiceRoller      dice.Roller
	EventBus        *events.Bus
	CacheSize       int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use in-memory repository if none provided
	spellRepo := cfg.SpellRepository
	if spellRepo == nil {
		spellRepo = spells.NewInMemoryRepository(cfg.CacheSize)
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
		bus.SubscribeDiagnostics(events.LogListener{})
	}

	svc, err := spellService.NewService(&spellService.ServiceConfig{
		Dataset:    cfg.Dataset,
		Repository: spellRepo,
		DiceRoller: cfg.DiceRoller,
		EventBus:   bus,
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		SpellService: svc,
		EventBus:     bus,
	}, nil
}
