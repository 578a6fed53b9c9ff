package factory

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/adapters/bedrock"
	"github.com/mikey/leads-agent/internal/adapters/gemini"
	"github.com/mikey/leads-agent/internal/adapters/openai"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
)

// LLMFactory creates LLM clients for a named provider
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new LLM client for the given provider
func (f *LLMFactory) CreateLLMClient(provider string) (core.LLMClient, error) {
	switch provider {
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger)
		return factory.CreateLLMClient()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger)
		return factory.CreateLLMClient()
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger)
		return factory.CreateLLMClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// LLMRegistry maps provider names to client handles. It is constructed once
// at startup and injected wherever a client is needed, so there is no hidden
// global cache of clients.
type LLMRegistry struct {
	factory *LLMFactory
	mu      sync.Mutex
	clients map[string]core.LLMClient
}

// NewLLMRegistry creates a registry backed by the given factory
func NewLLMRegistry(factory *LLMFactory) *LLMRegistry {
	return &LLMRegistry{
		factory: factory,
		clients: make(map[string]core.LLMClient),
	}
}

// Client returns the handle for a provider, constructing it on first use
func (r *LLMRegistry) Client(provider string) (core.LLMClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[provider]; ok {
		return client, nil
	}

	client, err := r.factory.CreateLLMClient(provider)
	if err != nil {
		return nil, err
	}
	r.clients[provider] = client
	return client, nil
}

// Default returns the handle for the configured default provider
func (r *LLMRegistry) Default() (core.LLMClient, error) {
	return r.Client(r.factory.cfg.GetLLM().Provider)
}

// Close releases any clients that hold network resources
func (r *LLMRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for _, client := range r.clients {
		if closer, ok := client.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
