package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/utils"
)

// ProcessedLead is the outcome of running a lead through the pipeline
type ProcessedLead struct {
	Lead    *Lead
	Verdict Verdict
	Reply   string
}

// Classification returns the base classification of the verdict
func (p *ProcessedLead) Classification() *Classification {
	switch v := p.Verdict.(type) {
	case *EnrichedClassification:
		return &v.Classification
	case *Classification:
		return v
	}
	return nil
}

// LeadService is the core lead triage pipeline: filter, extract, classify,
// optionally enrich, format, post.
type LeadService struct {
	llm             LLMClient
	enricher        Enricher
	chat            ChatClient
	prompts         PromptBuilder
	filter          *EventFilter
	extractor       *LeadExtractor
	logger          *zap.Logger
	maxRetries      int
	enrichEnabled   bool
	dryRun          bool
	includeLeadInfo bool
}

// NewLeadService creates a new lead service
func NewLeadService(
	llm LLMClient,
	enricher Enricher,
	chat ChatClient,
	prompts PromptBuilder,
	filter *EventFilter,
	extractor *LeadExtractor,
	logger *zap.Logger,
	maxRetries int,
	enrichEnabled bool,
	dryRun bool,
	includeLeadInfo bool,
) *LeadService {
	return &LeadService{
		llm:             llm,
		enricher:        enricher,
		chat:            chat,
		prompts:         prompts,
		filter:          filter,
		extractor:       extractor,
		logger:          logger,
		maxRetries:      maxRetries,
		enrichEnabled:   enrichEnabled,
		dryRun:          dryRun,
		includeLeadInfo: includeLeadInfo,
	}
}

// classificationResponse is the wire schema expected from the LLM
type classificationResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Company    string  `json:"company"`
}

// Classify invokes the LLM and parses its response into a validated
// Classification. Schema-invalid responses are retried up to the configured
// budget with early stop; transport errors and an exhausted budget surface
// as *ClassifierError. There is no fallback label.
func (s *LeadService) Classify(ctx context.Context, lead *Lead) (*Classification, error) {
	system := s.prompts.BuildClassificationPrompt()
	user := s.prompts.BuildLeadPrompt(lead)

	var lastErr error
	attempts := 0
	for attempts <= s.maxRetries {
		attempts++

		raw, err := s.llm.Generate(ctx, system, user)
		if err != nil {
			return nil, &ClassifierError{Attempts: attempts, Err: err}
		}

		c, err := parseClassification(raw)
		if err == nil {
			return c, nil
		}

		lastErr = err
		s.logger.Warn("Schema-invalid LLM response, retrying",
			zap.Int("attempt", attempts),
			zap.Int("max_retries", s.maxRetries),
			zap.Error(err))
	}

	return nil, &ClassifierError{
		Attempts: attempts,
		Err:      fmt.Errorf("%w: %v", ErrInvalidResponse, lastErr),
	}
}

// parseClassification extracts and validates the classification JSON
func parseClassification(raw string) (*Classification, error) {
	jsonStr, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var resp classificationResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}

	return NewClassification(Label(resp.Label), resp.Confidence, resp.Reason, resp.Company)
}

// Evaluate classifies a lead and, for promising leads with enrichment
// enabled, augments it with research. Enrichment failure is non-fatal: the
// plain classification is kept. The formatted reply is never posted here.
func (s *LeadService) Evaluate(ctx context.Context, lead *Lead) (*ProcessedLead, error) {
	c, err := s.Classify(ctx, lead)
	if err != nil {
		return nil, err
	}

	var verdict Verdict = c
	if s.enrichEnabled && s.enricher != nil && c.Label == LabelPromising {
		enriched, err := s.enricher.Enrich(ctx, lead, c)
		if err != nil {
			s.logger.Warn("Enrichment failed, continuing with plain classification", zap.Error(err))
		} else if enriched != nil {
			verdict = enriched
		}
	}

	return &ProcessedLead{
		Lead:    lead,
		Verdict: verdict,
		Reply:   FormatReply(lead, verdict, s.includeLeadInfo),
	}, nil
}

// Process runs a single inbound event through the full pipeline. All
// failures are contained: ineligible and unparseable events are skipped,
// classification failure drops the event without a reply, and a failed post
// is logged without retry.
func (s *LeadService) Process(ctx context.Context, ev *InboundEvent) {
	if !s.filter.Eligible(ev) {
		s.logger.Debug("Event not eligible",
			zap.String("type", ev.Type),
			zap.String("subtype", ev.Subtype),
			zap.String("channel", ev.Channel))
		return
	}

	runID := uuid.NewString()
	logger := s.logger.With(
		zap.String("run_id", runID),
		zap.String("channel", ev.Channel),
		zap.String("ts", ev.Timestamp))

	lead := s.extractor.Extract(ev)
	if lead == nil {
		logger.Info("Skipping event with no recoverable lead fields")
		return
	}

	processed, err := s.Evaluate(ctx, lead)
	if err != nil {
		logger.Error("Classification failed, dropping event", zap.Error(err))
		return
	}

	c := processed.Classification()
	logger.Info("Lead classified",
		zap.String("label", string(c.Label)),
		zap.Float64("confidence", c.Confidence),
		zap.String("reason", c.Reason))

	if s.dryRun {
		logger.Info("Dry run, reply suppressed", zap.String("reply", processed.Reply))
		return
	}

	if err := s.chat.PostMessage(ctx, ev.Channel, ev.Timestamp, processed.Reply); err != nil {
		logger.Error("Failed to post reply", zap.Error(err))
	}
}
