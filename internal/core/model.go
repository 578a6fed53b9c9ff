package core

import (
	"fmt"
)

// Label is the classification label assigned to a lead
type Label string

const (
	LabelSpam         Label = "spam"
	LabelSolicitation Label = "solicitation"
	LabelPromising    Label = "promising"
)

// IsValid reports whether the label is one of the three known values
func (l Label) IsValid() bool {
	switch l {
	case LabelSpam, LabelSolicitation, LabelPromising:
		return true
	}
	return false
}

// Lead represents a normalized inbound contact record
type Lead struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Message   string
	RawText   string
}

// IsClassifiable reports whether the lead carries any text to classify
func (l *Lead) IsClassifiable() bool {
	return l.Message != "" || l.RawText != ""
}

// FullName returns the lead's display name, or "Unknown" when absent
func (l *Lead) FullName() string {
	name := l.FirstName
	if l.LastName != "" {
		if name != "" {
			name += " "
		}
		name += l.LastName
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

// Classification represents the structured output of the lead classifier
type Classification struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Company    string  `json:"company,omitempty"`
}

// NewClassification validates and constructs a Classification.
// Out-of-range values are rejected, never clamped.
func NewClassification(label Label, confidence float64, reason, company string) (*Classification, error) {
	if !label.IsValid() {
		return nil, fmt.Errorf("invalid classification label: %q", label)
	}
	if confidence < 0.0 || confidence > 1.0 {
		return nil, fmt.Errorf("confidence %v out of range [0.0, 1.0]", confidence)
	}
	if reason == "" {
		return nil, fmt.Errorf("classification reason must not be empty")
	}
	return &Classification{
		Label:      label,
		Confidence: confidence,
		Reason:     reason,
		Company:    company,
	}, nil
}

// CompanyResearch holds researched company context for a promising lead
type CompanyResearch struct {
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	Industry           string `json:"industry,omitempty"`
	CompanySize        string `json:"company_size,omitempty"`
	Website            string `json:"website,omitempty"`
	RelevanceNotes     string `json:"relevance_notes,omitempty"`
}

// ContactResearch holds researched contact context for a promising lead
type ContactResearch struct {
	FullName       string `json:"full_name"`
	Title          string `json:"title,omitempty"`
	Summary        string `json:"summary,omitempty"`
	RelevanceNotes string `json:"relevance_notes,omitempty"`
}

// EnrichedClassification is a Classification augmented with research context.
// Research fields are nil when the corresponding task found nothing usable.
type EnrichedClassification struct {
	Classification
	CompanyResearch *CompanyResearch `json:"company_research,omitempty"`
	ContactResearch *ContactResearch `json:"contact_research,omitempty"`
	ResearchSummary string           `json:"research_summary,omitempty"`
}

// Verdict is the tagged result of a pipeline run: either a plain
// *Classification or an *EnrichedClassification. The formatter switches on
// the concrete type rather than probing for fields.
type Verdict interface {
	verdict()
}

func (*Classification) verdict()         {}
func (*EnrichedClassification) verdict() {}

// AttachmentField is a title/value pair inside an event attachment
type AttachmentField struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Attachment carries the semi-structured payload of a bot-relay message
type Attachment struct {
	Title  string            `json:"title,omitempty"`
	Text   string            `json:"text,omitempty"`
	Fields []AttachmentField `json:"fields,omitempty"`
}

// InboundEvent represents a raw message event from the chat platform.
// Field names follow the Slack wire format; the event is never mutated.
type InboundEvent struct {
	Type            string       `json:"type"`
	Subtype         string       `json:"subtype,omitempty"`
	Channel         string       `json:"channel"`
	User            string       `json:"user,omitempty"`
	Username        string       `json:"username,omitempty"`
	BotID           string       `json:"bot_id,omitempty"`
	Text            string       `json:"text,omitempty"`
	Timestamp       string       `json:"ts"`
	ThreadTimestamp string       `json:"thread_ts,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
}
