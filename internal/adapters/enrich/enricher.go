package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/core"
	"github.com/mikey/leads-agent/internal/utils"
)

const companyInstructions = `
--- Task ---
Research the COMPANY below using the search results.
Respond with a JSON object containing:
- company_name: string
- company_description: string (one or two sentences)
- industry: string (omit if unknown)
- company_size: string (omit if unknown)
- website: string (omit if unknown)
- relevance_notes: string (why this company may or may not be a fit)

If the search results do not support a reasonable view, respond with null.
Respond only with the JSON object (or null) and nothing else.`

const contactInstructions = `
--- Task ---
Research the CONTACT PERSON below using the search results.
Respond with a JSON object containing:
- full_name: string
- title: string (omit if unknown)
- summary: string (omit if unknown)
- relevance_notes: string (omit if unknown)

If the search results do not support a reasonable view, respond with null.
Respond only with the JSON object (or null) and nothing else.`

const summaryInstructions = `
--- Task ---
Write a brief free-text summary (2-3 sentences) of why this lead matters and
how to approach outreach, based only on the research below.
Respond with the summary text and nothing else.`

// LeadEnricher is an implementation of the Enricher interface. It researches
// a promising lead's company and contact with a shared, bounded search
// budget and merges the findings into an enriched classification.
type LeadEnricher struct {
	llm         core.LLMClient
	search      core.SearchClient
	prompts     core.PromptBuilder
	logger      *zap.Logger
	maxSearches int
}

// NewLeadEnricher creates a new lead enricher
func NewLeadEnricher(
	llm core.LLMClient,
	search core.SearchClient,
	prompts core.PromptBuilder,
	logger *zap.Logger,
	maxSearches int,
) *LeadEnricher {
	return &LeadEnricher{
		llm:         llm,
		search:      search,
		prompts:     prompts,
		logger:      logger,
		maxSearches: maxSearches,
	}
}

// Enrich researches the lead's company and contact. Fields a research task
// cannot support stay nil; nothing is ever fabricated. A nil, nil return
// means no research data was found at all.
func (e *LeadEnricher) Enrich(ctx context.Context, lead *core.Lead, c *core.Classification) (*core.EnrichedClassification, error) {
	budget := e.maxSearches
	system := e.prompts.BuildResearchPrompt()

	companyName := c.Company
	if companyName == "" {
		companyName = lead.Company
	}

	var companyResearch *core.CompanyResearch
	if companyName != "" {
		snippets := e.runSearches(ctx, &budget, companyQueries(companyName))
		companyResearch = e.researchCompany(ctx, system, companyName, snippets)
	}

	var contactResearch *core.ContactResearch
	if name := lead.FullName(); name != "Unknown" {
		snippets := e.runSearches(ctx, &budget, contactQueries(name, companyName))
		contactResearch = e.researchContact(ctx, system, name, snippets)
	}

	if companyResearch == nil && contactResearch == nil {
		e.logger.Debug("Research produced no usable data",
			zap.String("company", companyName),
			zap.Int("budget_left", budget))
		return nil, nil
	}

	enriched := &core.EnrichedClassification{
		Classification:  *c,
		CompanyResearch: companyResearch,
		ContactResearch: contactResearch,
	}
	enriched.ResearchSummary = e.summarize(ctx, system, enriched)
	return enriched, nil
}

// companyQueries builds the company research queries, most specific first
func companyQueries(company string) []string {
	return []string{
		company + " company website",
		company + " company",
	}
}

// contactQueries builds the contact research queries
func contactQueries(name, company string) []string {
	if company == "" {
		return []string{name}
	}
	return []string{
		name + " " + company,
		name + " " + company + " linkedin",
	}
}

// runSearches executes queries while budget remains, decrementing the shared
// budget per call. Failed searches consume budget but are otherwise ignored.
func (e *LeadEnricher) runSearches(ctx context.Context, budget *int, queries []string) []core.SearchResult {
	var all []core.SearchResult
	for _, q := range queries {
		if *budget <= 0 {
			break
		}
		*budget--

		results, err := e.search.Search(ctx, q)
		if err != nil {
			e.logger.Warn("Search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		all = append(all, results...)
	}
	return all
}

// researchCompany asks the LLM to form a view of the company from snippets
func (e *LeadEnricher) researchCompany(ctx context.Context, system, company string, results []core.SearchResult) *core.CompanyResearch {
	if len(results) == 0 {
		return nil
	}

	user := fmt.Sprintf("Company: %s\n\nSearch results:\n%s", company, formatResults(results))
	raw, err := e.llm.Generate(ctx, system+companyInstructions, user)
	if err != nil {
		e.logger.Warn("Company research call failed", zap.Error(err))
		return nil
	}

	var cr core.CompanyResearch
	if !decodeResearch(raw, &cr) || cr.CompanyName == "" || cr.CompanyDescription == "" {
		return nil
	}
	return &cr
}

// researchContact asks the LLM to form a view of the contact from snippets
func (e *LeadEnricher) researchContact(ctx context.Context, system, name string, results []core.SearchResult) *core.ContactResearch {
	if len(results) == 0 {
		return nil
	}

	user := fmt.Sprintf("Contact: %s\n\nSearch results:\n%s", name, formatResults(results))
	raw, err := e.llm.Generate(ctx, system+contactInstructions, user)
	if err != nil {
		e.logger.Warn("Contact research call failed", zap.Error(err))
		return nil
	}

	var cr core.ContactResearch
	if !decodeResearch(raw, &cr) || cr.FullName == "" {
		return nil
	}
	return &cr
}

// summarize produces the free-text research summary; failure leaves it empty
func (e *LeadEnricher) summarize(ctx context.Context, system string, enriched *core.EnrichedClassification) string {
	findings, err := json.Marshal(enriched)
	if err != nil {
		return ""
	}

	raw, err := e.llm.Generate(ctx, system+summaryInstructions, string(findings))
	if err != nil {
		e.logger.Warn("Research summary call failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(raw)
}

// decodeResearch parses an LLM research response, treating "null" and
// unparseable output as "no data"
func decodeResearch(raw string, out interface{}) bool {
	if strings.EqualFold(strings.TrimSpace(raw), "null") {
		return false
	}
	jsonStr, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(jsonStr), out) == nil
}

// formatResults renders search hits as numbered blocks for the LLM
func formatResults(results []core.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.URL != "" {
			sb.WriteString(r.URL + "\n")
		}
		if r.Snippet != "" {
			sb.WriteString(r.Snippet + "\n")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
