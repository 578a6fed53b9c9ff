package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/adapters/enrich"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
)

// EnricherFactory creates lead enrichers
type EnricherFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEnricherFactory creates a new enricher factory
func NewEnricherFactory(cfg *config.Config, logger *zap.Logger) *EnricherFactory {
	return &EnricherFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEnricher creates a new lead enricher. A nil enricher is returned
// when enrichment is disabled; the pipeline treats that as "never enrich".
func (f *EnricherFactory) CreateEnricher(llm core.LLMClient, searchClient core.SearchClient, prompts core.PromptBuilder) (core.Enricher, error) {
	enrichCfg := f.cfg.GetEnrich()
	if !enrichCfg.Enabled {
		return nil, nil
	}

	return enrich.NewLeadEnricher(
		llm,
		searchClient,
		prompts,
		f.logger,
		enrichCfg.MaxSearches,
	), nil
}
