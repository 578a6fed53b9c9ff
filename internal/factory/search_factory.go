package factory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/adapters/search"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
)

// SearchFactory creates web search clients
type SearchFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSearchFactory creates a new search factory
func NewSearchFactory(cfg *config.Config, logger *zap.Logger) *SearchFactory {
	return &SearchFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSearchClient creates a new DuckDuckGo search client
func (f *SearchFactory) CreateSearchClient() (core.SearchClient, error) {
	enrichCfg := f.cfg.GetEnrich()

	timeout, err := time.ParseDuration(enrichCfg.SearchTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid enrich.search_timeout: %w", err)
	}

	return search.NewDuckDuckGoClient(enrichCfg.SearchBaseURL, timeout, f.logger), nil
}
