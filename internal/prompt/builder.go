package prompt

import (
	"strings"

	"github.com/mikey/leads-agent/internal/core"
)

// BaseClassificationPrompt defines the core classification task. The label
// taxonomy, the conservative default and the response schema are fixed;
// deployment customization only ever appends sections.
const BaseClassificationPrompt = `You classify inbound leads from a company contact form.

You will receive lead information including name, email, and their message.
Extract and return the contact details along with your classification.

Classification labels:
- spam: irrelevant, automated, SEO/link-building, crypto, junk
- solicitation: vendors, sales pitches, recruiters, partnership offers
- promising: genuine inquiry about services or collaboration

Rules:
- Be conservative — if unclear, choose spam
- Extract the company name from the message or email domain if not provided
- Provide a brief reason for your classification

Respond with a JSON object containing:
- label: one of "spam", "solicitation", "promising"
- confidence: number between 0 and 1
- reason: string (brief reason for the classification)
- company: string (extracted company name, or omit if unknown)

Respond only with the JSON object and nothing else.
`

// BaseResearchPrompt defines how lead research is conducted. Focus areas and
// ICP context are appended from configuration.
const BaseResearchPrompt = `You are researching a promising sales lead to gather context before outreach.

You will receive web search results about the lead's company and contact person.

Guidelines:
- Be efficient — work only from the search results you are given
- Do NOT make up information — only include what the search results support
- If you cannot find enough information to form a reasonable view, return null
`

// Builder renders system instructions and per-lead prompts from the current
// prompt configuration.
type Builder struct {
	holder *Holder
}

// NewBuilder creates a prompt builder reading configuration from holder
func NewBuilder(holder *Holder) *Builder {
	return &Builder{holder: holder}
}

// BuildClassificationPrompt builds the classifier system instructions.
// With an empty configuration the output is exactly BaseClassificationPrompt.
func (b *Builder) BuildClassificationPrompt() string {
	cfg := b.holder.Get()
	parts := []string{BaseClassificationPrompt}

	if cfg.CompanyName != "" || cfg.ServicesDescription != "" {
		var ctx []string
		if cfg.CompanyName != "" {
			ctx = append(ctx, "Company: "+cfg.CompanyName)
		}
		if cfg.ServicesDescription != "" {
			ctx = append(ctx, "Services: "+cfg.ServicesDescription)
		}
		parts = append(parts, "\n--- Internal Company Context ---\n"+strings.Join(ctx, "\n"))
	}

	if !cfg.ICP.IsEmpty() {
		icp := cfg.ICP
		var lines []string
		if icp.Description != "" {
			lines = append(lines, "**Target Profile:** "+icp.Description)
		}
		if len(icp.TargetIndustries) > 0 {
			lines = append(lines, "**Target Industries:** "+strings.Join(icp.TargetIndustries, ", "))
		}
		if len(icp.TargetCompanySizes) > 0 {
			lines = append(lines, "**Target Company Sizes:** "+strings.Join(icp.TargetCompanySizes, ", "))
		}
		if len(icp.TargetRoles) > 0 {
			lines = append(lines, "**Decision Maker Roles:** "+strings.Join(icp.TargetRoles, ", "))
		}
		if len(icp.GeographicFocus) > 0 {
			lines = append(lines, "**Geographic Focus:** "+strings.Join(icp.GeographicFocus, ", "))
		}
		if len(icp.DisqualifyingSignals) > 0 {
			lines = append(lines, "**Disqualifying Signals:** "+strings.Join(icp.DisqualifyingSignals, ", "))
		}
		parts = append(parts, "\n--- Ideal Client Profile ---\n"+strings.Join(lines, "\n"))
	}

	if len(cfg.QualifyingQuestions) > 0 {
		parts = append(parts, "\n--- Qualifying Questions ---\nConsider these when classifying:\n"+bulletList(cfg.QualifyingQuestions))
	}

	if cfg.CustomInstructions != "" {
		parts = append(parts, "\n--- Additional Instructions ---\n"+cfg.CustomInstructions)
	}

	return strings.Join(parts, "\n")
}

// BuildResearchPrompt builds the enrichment system instructions
func (b *Builder) BuildResearchPrompt() string {
	cfg := b.holder.Get()
	parts := []string{BaseResearchPrompt}

	if len(cfg.ResearchFocusAreas) > 0 {
		parts = append(parts, "\n--- What to Research ---\nFocus on finding:\n"+bulletList(cfg.ResearchFocusAreas))
	}

	if len(cfg.QualifyingQuestions) > 0 {
		parts = append(parts, "\n--- Questions to Answer ---\nTry to gather information that helps answer:\n"+bulletList(cfg.QualifyingQuestions))
	}

	if !cfg.ICP.IsEmpty() {
		icp := cfg.ICP
		var lines []string
		if icp.Description != "" {
			lines = append(lines, "**Ideal Profile:** "+icp.Description)
		}
		if len(icp.TargetIndustries) > 0 {
			lines = append(lines, "**Priority Industries:** "+strings.Join(icp.TargetIndustries, ", "))
		}
		if len(icp.TargetCompanySizes) > 0 {
			lines = append(lines, "**Target Company Sizes:** "+strings.Join(icp.TargetCompanySizes, ", "))
		}
		if len(icp.TargetRoles) > 0 {
			lines = append(lines, "**Decision Maker Roles:** "+strings.Join(icp.TargetRoles, ", "))
		}
		if len(icp.DisqualifyingSignals) > 0 {
			lines = append(lines, "**Red Flags:** "+strings.Join(icp.DisqualifyingSignals, ", "))
		}
		if len(lines) > 0 {
			parts = append(parts, "\n--- Ideal Client Profile ---\nUse this context to assess fit:\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(parts, "\n")
}

// BuildLeadPrompt serializes a lead into the per-request user prompt.
// Structured fields become labeled lines; a lead with only raw text is
// passed through verbatim.
func (b *Builder) BuildLeadPrompt(lead *core.Lead) string {
	if lead.FirstName == "" && lead.LastName == "" && lead.Email == "" && lead.Company == "" {
		if lead.Message != "" {
			return lead.Message
		}
		return lead.RawText
	}

	var lines []string
	if lead.FirstName != "" || lead.LastName != "" {
		lines = append(lines, "Name: "+lead.FullName())
	}
	if lead.Email != "" {
		lines = append(lines, "Email: "+lead.Email)
	}
	if lead.Company != "" {
		lines = append(lines, "Company: "+lead.Company)
	}
	if lead.Message != "" {
		lines = append(lines, "Message:\n"+lead.Message)
	} else if lead.RawText != "" {
		lines = append(lines, "Message:\n"+lead.RawText)
	}
	return strings.Join(lines, "\n")
}

// bulletList renders items as markdown bullets
func bulletList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(item)
	}
	return sb.String()
}
