package di

import (
	"io"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/backtest"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
	"github.com/mikey/leads-agent/internal/factory"
	"github.com/mikey/leads-agent/internal/logging"
	"github.com/mikey/leads-agent/internal/prompt"
	"github.com/mikey/leads-agent/internal/server"
)

// IngestModeFromConfig maps the configured mode string onto an IngestMode
func IngestModeFromConfig(cfg *config.Config) core.IngestMode {
	if cfg.GetSlack().Mode == string(core.ModeBotRelay) {
		return core.ModeBotRelay
	}
	return core.ModePlain
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMRegistry); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewChatFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSearchFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEnricherFactory); err != nil {
		return nil, err
	}

	// Register LLM client (default provider from the registry)
	if err := container.Provide(func(r *factory.LLMRegistry) (core.LLMClient, error) {
		return r.Default()
	}); err != nil {
		return nil, err
	}

	// Register prompt configuration holder and builder
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*prompt.Holder, error) {
		promptCfg, err := prompt.LoadConfigFile(cfg.GetString("prompt.config_path"))
		if err != nil {
			return nil, err
		}
		if !promptCfg.IsEmpty() {
			logger.Info("Loaded prompt configuration")
		}
		return prompt.NewHolder(promptCfg), nil
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(holder *prompt.Holder) core.PromptBuilder {
		return prompt.NewBuilder(holder)
	}); err != nil {
		return nil, err
	}

	// Register chat and search clients
	if err := container.Provide(func(f *factory.ChatFactory) (core.ChatClient, error) {
		return f.CreateChatClient()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.SearchFactory) (core.SearchClient, error) {
		return f.CreateSearchClient()
	}); err != nil {
		return nil, err
	}

	// Register enricher (nil when enrichment is disabled)
	if err := container.Provide(func(
		f *factory.EnricherFactory,
		llm core.LLMClient,
		searchClient core.SearchClient,
		prompts core.PromptBuilder,
	) (core.Enricher, error) {
		return f.CreateEnricher(llm, searchClient, prompts)
	}); err != nil {
		return nil, err
	}

	// Register event filter and lead extractor
	if err := container.Provide(func(cfg *config.Config) *core.EventFilter {
		slackCfg := cfg.GetSlack()
		return core.NewEventFilter(IngestModeFromConfig(cfg), slackCfg.ChannelIDs, slackCfg.RelayUsername)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *core.LeadExtractor {
		return core.NewLeadExtractor(IngestModeFromConfig(cfg), logger)
	}); err != nil {
		return nil, err
	}

	// Register lead service
	if err := container.Provide(func(
		cfg *config.Config,
		llm core.LLMClient,
		enricher core.Enricher,
		chat core.ChatClient,
		prompts core.PromptBuilder,
		filter *core.EventFilter,
		extractor *core.LeadExtractor,
		logger *zap.Logger,
	) *core.LeadService {
		behavior := cfg.GetBehavior()
		return core.NewLeadService(
			llm,
			enricher,
			chat,
			prompts,
			filter,
			extractor,
			logger,
			cfg.GetLLM().MaxRetries,
			cfg.GetEnrich().Enabled,
			behavior.DryRun,
			behavior.IncludeLeadInfo,
		)
	}); err != nil {
		return nil, err
	}

	// Register dispatcher and webhook server
	if err := container.Provide(func(service *core.LeadService, cfg *config.Config, logger *zap.Logger) *server.Dispatcher {
		serverCfg := cfg.GetServer()
		return server.NewDispatcher(service, logger, serverCfg.QueueSize, serverCfg.Workers)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(server.NewServer); err != nil {
		return nil, err
	}

	// Register backtest runner
	if err := container.Provide(func(
		service *core.LeadService,
		chat core.ChatClient,
		filter *core.EventFilter,
		extractor *core.LeadExtractor,
		cfg *config.Config,
		logger *zap.Logger,
	) *backtest.Runner {
		return backtest.NewRunner(service, chat, filter, extractor, cfg.GetSlack().ChannelIDs, logger, backtestOutput())
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// backtestOutput is where backtest reports are written
func backtestOutput() io.Writer {
	return os.Stdout
}
