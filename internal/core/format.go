package core

import (
	"fmt"
	"strings"

	"github.com/mikey/leads-agent/internal/utils"
)

const (
	messagePreviewLen = 150
	contactSummaryLen = 300
)

// labelEmoji keys the reply emoji by classification label
var labelEmoji = map[Label]string{
	LabelSpam:         "🔴",
	LabelSolicitation: "🟡",
	LabelPromising:    "🟢",
}

// FormatReply renders a classification verdict as the reply text posted to
// the chat platform. It is a pure function of its inputs.
func FormatReply(lead *Lead, verdict Verdict, includeLeadInfo bool) string {
	var c *Classification
	var enriched *EnrichedClassification

	switch v := verdict.(type) {
	case *EnrichedClassification:
		enriched = v
		c = &v.Classification
	case *Classification:
		c = v
	default:
		return ""
	}

	var parts []string

	if includeLeadInfo {
		emailDisplay := "no email"
		if lead.Email != "" {
			emailDisplay = fmt.Sprintf("<mailto:%s|%s>", lead.Email, lead.Email)
		}
		parts = append(parts, fmt.Sprintf("*Lead:* %s (%s)", lead.FullName(), emailDisplay))
		if lead.Company != "" {
			parts = append(parts, "*Company:* "+lead.Company)
		}
		if lead.Message != "" {
			parts = append(parts, "*Message:* "+utils.TruncateWithEllipsis(lead.Message, messagePreviewLen))
		}
		parts = append(parts, "")
	}

	emoji, ok := labelEmoji[c.Label]
	if !ok {
		emoji = "⚪"
	}
	parts = append(parts, fmt.Sprintf("%s *%s* (%.0f%%)", emoji, strings.ToUpper(string(c.Label)), c.Confidence*100))
	parts = append(parts, "_"+c.Reason+"_")

	if c.Company != "" && c.Company != lead.Company {
		parts = append(parts, "\n📋 Company: "+c.Company)
	}

	if enriched != nil {
		parts = append(parts, formatResearch(enriched)...)
	}

	return strings.Join(parts, "\n")
}

// formatResearch renders the optional enrichment sections in fixed order
func formatResearch(e *EnrichedClassification) []string {
	var parts []string

	if cr := e.CompanyResearch; cr != nil {
		parts = append(parts, "\n*📊 Company Research:*")
		parts = append(parts, fmt.Sprintf("• *%s*: %s", cr.CompanyName, cr.CompanyDescription))
		if cr.Industry != "" {
			parts = append(parts, "• Industry: "+cr.Industry)
		}
		if cr.CompanySize != "" {
			parts = append(parts, "• Size: "+cr.CompanySize)
		}
		if cr.Website != "" {
			url := cr.Website
			if !strings.HasPrefix(url, "http") {
				url = "https://" + url
			}
			parts = append(parts, fmt.Sprintf("• Website: <%s|%s>", url, cr.Website))
		}
		if cr.RelevanceNotes != "" {
			parts = append(parts, "• Relevance: "+cr.RelevanceNotes)
		}
	}

	if cr := e.ContactResearch; cr != nil {
		parts = append(parts, "\n*👤 Contact Research:*")
		line := "• *" + cr.FullName + "*"
		if cr.Title != "" {
			line += " - " + cr.Title
		}
		parts = append(parts, line)
		if cr.Summary != "" {
			parts = append(parts, "• "+utils.TruncateWithEllipsis(cr.Summary, contactSummaryLen))
		}
		if cr.RelevanceNotes != "" {
			parts = append(parts, "• Relevance: "+cr.RelevanceNotes)
		}
	}

	if e.ResearchSummary != "" {
		parts = append(parts, "\n*📝 Summary:*\n"+e.ResearchSummary)
	}

	return parts
}
