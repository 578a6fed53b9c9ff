package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/backtest"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
	"github.com/mikey/leads-agent/internal/di"
	"github.com/mikey/leads-agent/internal/factory"
	"github.com/mikey/leads-agent/internal/logging"
	"github.com/mikey/leads-agent/internal/prompt"
)

var (
	// LLM provider flags
	provider    = flag.String("provider", "openai", "LLM provider (openai, gemini, bedrock)")
	maxTokens   = flag.Int("max-tokens", 5000, "Maximum tokens for LLM response")
	temperature = flag.Float64("temperature", 0.0, "Temperature for LLM generation")
	maxRetries  = flag.Int("max-retries", 2, "Retries on schema-invalid LLM responses")

	// OpenAI-compatible flags (defaults work for a local Ollama)
	openaiAPIKey  = flag.String("openai-api-key", "ollama", "API key for OpenAI-compatible endpoint")
	openaiBaseURL = flag.String("openai-base-url", "http://localhost:11434/v1", "Base URL for OpenAI-compatible endpoint")
	openaiModel   = flag.String("openai-model", "llama3.1:8b", "Model name for OpenAI-compatible endpoint")

	// Gemini flags
	geminiAPIKey = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModel  = flag.String("gemini-model", "gemini-1.5-flash", "Gemini model name")

	// Bedrock flags
	bedrockRegion = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModel  = flag.String("bedrock-model", "anthropic.claude-3-haiku-20240307-v1:0", "Bedrock model ID")

	// Slack flags (needed for backtests)
	slackToken    = flag.String("slack-token", "", "Slack bot token")
	slackChannel  = flag.String("channel", "", "Slack channel ID")
	mode          = flag.String("mode", "plain", "Ingest mode (plain, bot-relay)")
	relayUsername = flag.String("relay-username", "HubSpot", "Expected relay bot username")

	// Enrichment flags
	enrichEnabled = flag.Bool("enrich", false, "Research promising leads before formatting")
	maxSearches   = flag.Int("max-searches", 4, "Search budget shared across enrichment tasks")

	// Task flags
	message      = flag.String("message", "", "Classify a single message and exit")
	runBacktest  = flag.Bool("backtest", false, "Classify historical channel messages")
	limit        = flag.Int("limit", 50, "Number of history messages to fetch for backtest")
	promptConfig = flag.String("prompt-config", "", "Path to prompt configuration JSON")
	leadInfo     = flag.Bool("include-lead-info", false, "Include lead details in formatted replies")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog      = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile   = flag.Bool("config", false, "Load configuration from config file instead of flags")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
	} else {
		cfg = createConfigFromFlags()
	}

	if *message == "" && !*runBacktest {
		fmt.Println("Nothing to do: pass -message or -backtest")
		flag.Usage()
		os.Exit(2)
	}

	service, chat, filter, extractor, registry := buildPipeline(cfg, logger)
	defer registry.Close()

	ctx := context.Background()

	if *message != "" {
		classifyOne(ctx, service, *message)
	}

	if *runBacktest {
		runner := backtest.NewRunner(service, chat, filter, extractor,
			cfg.GetSlack().ChannelIDs, logger, os.Stdout)
		if err := runner.Run(ctx, *limit); err != nil {
			logger.Fatal("Backtest failed", zap.Error(err))
		}
	}
}

// buildPipeline wires the lead service and its collaborators from config
func buildPipeline(cfg *config.Config, logger *zap.Logger) (
	*core.LeadService,
	core.ChatClient,
	*core.EventFilter,
	*core.LeadExtractor,
	*factory.LLMRegistry,
) {
	registry := factory.NewLLMRegistry(factory.NewLLMFactory(cfg, logger))
	llm, err := registry.Default()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	promptCfg, err := prompt.LoadConfigFile(cfg.GetString("prompt.config_path"))
	if err != nil {
		logger.Fatal("Failed to load prompt configuration", zap.Error(err))
	}
	prompts := prompt.NewBuilder(prompt.NewHolder(promptCfg))

	var enricher core.Enricher
	if cfg.GetEnrich().Enabled {
		searchClient, err := factory.NewSearchFactory(cfg, logger).CreateSearchClient()
		if err != nil {
			logger.Fatal("Failed to create search client", zap.Error(err))
		}
		enricher, err = factory.NewEnricherFactory(cfg, logger).CreateEnricher(llm, searchClient, prompts)
		if err != nil {
			logger.Fatal("Failed to create enricher", zap.Error(err))
		}
	}

	chat, err := factory.NewChatFactory(cfg, logger).CreateChatClient()
	if err != nil {
		logger.Fatal("Failed to create chat client", zap.Error(err))
	}

	slackCfg := cfg.GetSlack()
	ingestMode := di.IngestModeFromConfig(cfg)
	filter := core.NewEventFilter(ingestMode, slackCfg.ChannelIDs, slackCfg.RelayUsername)
	extractor := core.NewLeadExtractor(ingestMode, logger)

	service := core.NewLeadService(
		llm,
		enricher,
		chat,
		prompts,
		filter,
		extractor,
		logger,
		cfg.GetLLM().MaxRetries,
		cfg.GetEnrich().Enabled,
		true, // the CLI never posts
		cfg.GetBehavior().IncludeLeadInfo,
	)

	return service, chat, filter, extractor, registry
}

// classifyOne runs a single raw message through classification and prints
// the result
func classifyOne(ctx context.Context, service *core.LeadService, text string) {
	lead := &core.Lead{Message: text, RawText: text}

	result, err := service.Evaluate(ctx, lead)
	if err != nil {
		fmt.Printf("Classification failed: %v\n", err)
		os.Exit(1)
	}

	c := result.Classification()
	fmt.Printf("\n=== Classification ===\n")
	fmt.Printf("Label: %s\n", c.Label)
	fmt.Printf("Confidence: %.0f%%\n", c.Confidence*100)
	fmt.Printf("Reason: %s\n", c.Reason)
	if c.Company != "" {
		fmt.Printf("Company: %s\n", c.Company)
	}
	fmt.Printf("\n=== Reply ===\n%s\n", result.Reply)
}

// createConfigFromFlags builds a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	v.Set("llm.max_retries", *maxRetries)

	v.Set("openai.api_key", *openaiAPIKey)
	v.Set("openai.base_url", *openaiBaseURL)
	v.Set("openai.model_name", *openaiModel)
	v.Set("openai.max_tokens", *maxTokens)
	v.Set("openai.temperature", *temperature)

	v.Set("gemini.api_key", *geminiAPIKey)
	v.Set("gemini.model_name", *geminiModel)
	v.Set("gemini.max_tokens", *maxTokens)
	v.Set("gemini.temperature", *temperature)

	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModel)
	v.Set("bedrock.max_tokens", *maxTokens)
	v.Set("bedrock.temperature", *temperature)

	v.Set("slack.bot_token", *slackToken)
	if *slackChannel != "" {
		v.Set("slack.channel_ids", []string{*slackChannel})
	}
	v.Set("slack.mode", *mode)
	v.Set("slack.relay_username", *relayUsername)

	v.Set("enrich.enabled", *enrichEnabled)
	v.Set("enrich.max_searches", *maxSearches)

	v.Set("behavior.dry_run", true)
	v.Set("behavior.include_lead_info", *leadInfo)

	v.Set("prompt.config_path", *promptConfig)

	return config.NewFromViper(v)
}
