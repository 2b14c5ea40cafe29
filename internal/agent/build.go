// README: Startup wiring of one agent implementation per known type.
package agent

import (
	"context"
	"log"

	"voyage/internal/config"
	"voyage/internal/maps"
)

// BuildRegistry populates the agent registry from configuration. With a
// Gemini key every section is LLM-written (attractions additionally grounded
// by Places when a maps key is present); without one, offline agents keep
// the pipeline runnable. The returned func releases provider resources.
func BuildRegistry(ctx context.Context, cfg config.AgentConfig) (*Registry, func(), error) {
	registry := NewRegistry()

	if cfg.GeminiKey == "" {
		log.Printf("GEMINI_API_KEY not set; using offline agents")
		for _, name := range AllTypes {
			registry.Register(name, NewStaticAgent(name))
		}
		return registry, func() {}, nil
	}

	provider, err := NewGeminiProvider(ctx, cfg.GeminiKey)
	if err != nil {
		return nil, nil, err
	}

	var places *maps.PlacesService
	if cfg.MapsKey != "" {
		places, err = maps.NewPlacesService(cfg.MapsKey)
		if err != nil {
			provider.Close()
			return nil, nil, err
		}
	}

	for _, name := range AllTypes {
		if name == TypeAttractions {
			registry.Register(name, NewAttractionsAgent(provider, places))
			continue
		}
		registry.Register(name, NewGeminiAgent(provider, name))
	}
	return registry, provider.Close, nil
}
