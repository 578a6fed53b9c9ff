package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/leads-agent/")
	v.AddConfigPath("$HOME/.leads-agent")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("LEADS_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.max_retries", 2)

	// OpenAI-compatible defaults (work for a local Ollama)
	v.SetDefault("openai.api_key", "ollama")
	v.SetDefault("openai.base_url", "http://localhost:11434/v1")
	v.SetDefault("openai.model_name", "llama3.1:8b")
	v.SetDefault("openai.max_tokens", 5000)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.top_p", 1.0)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.top_p", 0.9)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.0)
	v.SetDefault("bedrock.top_p", 0.9)

	// Slack defaults
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.signing_secret", "")
	v.SetDefault("slack.channel_ids", []string{})
	v.SetDefault("slack.mode", "plain")
	v.SetDefault("slack.relay_username", "HubSpot")

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8000")
	v.SetDefault("server.queue_size", 64)
	v.SetDefault("server.workers", 1)

	// Enrichment defaults
	v.SetDefault("enrich.enabled", false)
	v.SetDefault("enrich.max_searches", 4)
	v.SetDefault("enrich.search_base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("enrich.search_timeout", "15s")

	// Behavior defaults
	v.SetDefault("behavior.dry_run", true)
	v.SetDefault("behavior.include_lead_info", false)

	// Prompt customization defaults
	v.SetDefault("prompt.config_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
