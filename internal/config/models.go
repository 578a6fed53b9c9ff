package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider   string
	MaxRetries int
}

// OpenAIConfig represents the configuration for an OpenAI-compatible endpoint
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// SlackConfig represents the chat platform configuration
type SlackConfig struct {
	BotToken      string
	SigningSecret string
	ChannelIDs    []string
	Mode          string
	RelayUsername string
}

// ServerConfig represents the webhook server configuration
type ServerConfig struct {
	ListenAddress string
	QueueSize     int
	Workers       int
}

// EnrichConfig represents the lead enrichment configuration
type EnrichConfig struct {
	Enabled       bool
	MaxSearches   int
	SearchBaseURL string
	SearchTimeout string
}

// BehaviorConfig represents runtime behavior toggles
type BehaviorConfig struct {
	DryRun          bool
	IncludeLeadInfo bool
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:   c.GetString("llm.provider"),
		MaxRetries: c.GetInt("llm.max_retries"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetSlack returns the chat platform configuration
func (c *Config) GetSlack() SlackConfig {
	return SlackConfig{
		BotToken:      c.GetString("slack.bot_token"),
		SigningSecret: c.GetString("slack.signing_secret"),
		ChannelIDs:    c.GetStringSlice("slack.channel_ids"),
		Mode:          c.GetString("slack.mode"),
		RelayUsername: c.GetString("slack.relay_username"),
	}
}

// GetServer returns the webhook server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		QueueSize:     c.GetInt("server.queue_size"),
		Workers:       c.GetInt("server.workers"),
	}
}

// GetEnrich returns the enrichment configuration
func (c *Config) GetEnrich() EnrichConfig {
	return EnrichConfig{
		Enabled:       c.GetBool("enrich.enabled"),
		MaxSearches:   c.GetInt("enrich.max_searches"),
		SearchBaseURL: c.GetString("enrich.search_base_url"),
		SearchTimeout: c.GetString("enrich.search_timeout"),
	}
}

// GetBehavior returns the runtime behavior configuration
func (c *Config) GetBehavior() BehaviorConfig {
	return BehaviorConfig{
		DryRun:          c.GetBool("behavior.dry_run"),
		IncludeLeadInfo: c.GetBool("behavior.include_lead_info"),
	}
}
