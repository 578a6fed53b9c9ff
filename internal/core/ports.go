package core

import (
	"context"
)

// LLMClient defines the interface for interacting with LLM providers.
// Implementations are generic text-in/text-out; schema parsing, validation
// and the retry budget are owned by the LeadService.
type LLMClient interface {
	// Generate produces a completion for the given system and user prompts
	Generate(ctx context.Context, system, user string) (string, error)
}

// Enricher defines the interface for researching promising leads
type Enricher interface {
	// Enrich augments a promising classification with company and contact
	// research. Missing data is represented by nil fields, never invented.
	Enrich(ctx context.Context, lead *Lead, c *Classification) (*EnrichedClassification, error)
}

// ChatClient defines the interface for the chat platform
type ChatClient interface {
	// PostMessage posts text into a channel, as a thread reply when
	// threadTS is non-empty
	PostMessage(ctx context.Context, channel, threadTS, text string) error

	// FetchHistory retrieves up to limit recent channel messages as events
	FetchHistory(ctx context.Context, channel string, limit int) ([]InboundEvent, error)
}

// PromptBuilder defines the interface for rendering LLM prompts from the
// current prompt configuration
type PromptBuilder interface {
	// BuildClassificationPrompt builds the classifier system instructions
	BuildClassificationPrompt() string

	// BuildResearchPrompt builds the enrichment system instructions
	BuildResearchPrompt() string

	// BuildLeadPrompt serializes a lead into the per-request user prompt
	BuildLeadPrompt(lead *Lead) string
}

// SearchClient defines the interface for web search used during enrichment
type SearchClient interface {
	// Search runs a single query and returns result snippets
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// SearchResult is one web search hit
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}
