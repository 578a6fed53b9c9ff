package core

import (
	"strings"

	"go.uber.org/zap"
)

// fieldSynonyms maps normalized attachment field titles onto lead fields.
// Titles are matched case-insensitively; anything not listed here stays
// unmapped and the attachment is logged for offline inspection.
var fieldSynonyms = map[string]string{
	"first name":    "first_name",
	"firstname":     "first_name",
	"last name":     "last_name",
	"lastname":      "last_name",
	"email":         "email",
	"e-mail":        "email",
	"email address": "email",
	"company":       "company",
	"company name":  "company",
	"organization":  "company",
	"organisation":  "company",
	"message":       "message",
	"comments":      "message",
	"details":       "message",
	"description":   "message",
}

// LeadExtractor parses inbound events into normalized leads
type LeadExtractor struct {
	mode   IngestMode
	logger *zap.Logger
}

// NewLeadExtractor creates a new lead extractor for the given ingest mode
func NewLeadExtractor(mode IngestMode, logger *zap.Logger) *LeadExtractor {
	return &LeadExtractor{
		mode:   mode,
		logger: logger,
	}
}

// Extract builds a Lead from an eligible event. It returns nil when no
// usable fields can be recovered; callers log and skip, never crash.
func (e *LeadExtractor) Extract(ev *InboundEvent) *Lead {
	switch e.mode {
	case ModeBotRelay:
		return e.extractFromAttachments(ev)
	default:
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return nil
		}
		return &Lead{Message: text, RawText: text}
	}
}

// extractFromAttachments recovers lead fields from relay-bot attachments
func (e *LeadExtractor) extractFromAttachments(ev *InboundEvent) *Lead {
	lead := &Lead{}
	var raw []string

	for _, att := range ev.Attachments {
		if att.Text != "" {
			raw = append(raw, att.Text)
		}
		for _, field := range att.Fields {
			title := strings.ToLower(strings.TrimSpace(field.Title))
			value := strings.TrimSpace(field.Value)
			if value == "" {
				continue
			}
			raw = append(raw, field.Title+": "+value)

			switch fieldSynonyms[title] {
			case "first_name":
				lead.FirstName = value
			case "last_name":
				lead.LastName = value
			case "email":
				lead.Email = value
			case "company":
				lead.Company = value
			case "message":
				lead.Message = value
			default:
				e.logger.Debug("Unmapped attachment field",
					zap.String("title", field.Title),
					zap.String("value", value))
			}
		}
	}

	lead.RawText = strings.Join(raw, "\n")

	// A lead we can neither contact nor classify is unusable
	if lead.Email == "" && lead.Message == "" {
		e.logger.Debug("No usable lead fields in attachments",
			zap.Int("attachments", len(ev.Attachments)),
			zap.String("raw", lead.RawText))
		return nil
	}

	return lead
}
