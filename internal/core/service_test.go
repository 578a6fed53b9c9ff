package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// mockLLM replays canned responses in order
type mockLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (m *mockLLM) Generate(ctx context.Context, system, user string) (string, error) {
	i := m.calls
	m.calls++
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	var resp string
	if i < len(m.responses) {
		resp = m.responses[i]
	}
	return resp, err
}

// spyEnricher counts calls and returns a fixed result
type spyEnricher struct {
	calls  int
	result *EnrichedClassification
	err    error
}

func (s *spyEnricher) Enrich(ctx context.Context, lead *Lead, c *Classification) (*EnrichedClassification, error) {
	s.calls++
	return s.result, s.err
}

// recorderChat records posted messages
type recorderChat struct {
	posts []string
	err   error
}

func (r *recorderChat) PostMessage(ctx context.Context, channel, threadTS, text string) error {
	r.posts = append(r.posts, text)
	return r.err
}

func (r *recorderChat) FetchHistory(ctx context.Context, channel string, limit int) ([]InboundEvent, error) {
	return nil, nil
}

// stubPrompts returns fixed instructions
type stubPrompts struct{}

func (stubPrompts) BuildClassificationPrompt() string { return "classify" }
func (stubPrompts) BuildResearchPrompt() string       { return "research" }
func (stubPrompts) BuildLeadPrompt(lead *Lead) string { return lead.Message }

func newTestService(llm LLMClient, enricher Enricher, chat ChatClient, enrich, dryRun bool) *LeadService {
	return NewLeadService(
		llm,
		enricher,
		chat,
		stubPrompts{},
		NewEventFilter(ModePlain, nil, ""),
		NewLeadExtractor(ModePlain, zap.NewNop()),
		zap.NewNop(),
		2,
		enrich,
		dryRun,
		false,
	)
}

func testLead() *Lead {
	return &Lead{FirstName: "Jane", Message: "We need help with a data migration"}
}

func TestClassifyValidResponse(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.82, "reason": "genuine budget-backed inquiry", "company": "Acme"}`,
	}}
	s := newTestService(llm, nil, &recorderChat{}, false, true)

	c, err := s.Classify(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Label != LabelPromising || c.Confidence != 0.82 || c.Company != "Acme" {
		t.Errorf("Unexpected classification: %+v", c)
	}
}

func TestClassifySalvagesWrappedJSON(t *testing.T) {
	llm := &mockLLM{responses: []string{
		"Here is my answer:\n```json\n{\"label\": \"spam\", \"confidence\": 1.0, \"reason\": \"link farm\"}\n```",
	}}
	s := newTestService(llm, nil, &recorderChat{}, false, true)

	c, err := s.Classify(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Label != LabelSpam {
		t.Errorf("Unexpected label: %s", c.Label)
	}
}

func TestClassifyRetriesOnInvalidSchemaAndStopsEarly(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "maybe", "confidence": 0.5, "reason": "r"}`,
		`{"label": "solicitation", "confidence": 0.9, "reason": "vendor pitch"}`,
		`{"label": "spam", "confidence": 1.0, "reason": "never reached"}`,
	}}
	s := newTestService(llm, nil, &recorderChat{}, false, true)

	c, err := s.Classify(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Label != LabelSolicitation {
		t.Errorf("Unexpected label: %s", c.Label)
	}
	if llm.calls != 2 {
		t.Errorf("Expected early stop after 2 calls, got %d", llm.calls)
	}
}

func TestClassifyExhaustsRetryBudget(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "spam", "confidence": 7, "reason": "r"}`,
		`not json at all`,
		`{"label": "spam", "confidence": 1.0, "reason": ""}`,
	}}
	s := newTestService(llm, nil, &recorderChat{}, false, true)

	_, err := s.Classify(context.Background(), testLead())
	if err == nil {
		t.Fatal("Expected an error after exhausting retries")
	}
	var cerr *ClassifierError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *ClassifierError, got %T", err)
	}
	if cerr.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", cerr.Attempts)
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected error to wrap ErrInvalidResponse, got %v", err)
	}
	if llm.calls != 3 {
		t.Errorf("Expected 3 LLM calls, got %d", llm.calls)
	}
}

func TestClassifyTransportErrorFailsFast(t *testing.T) {
	llm := &mockLLM{errs: []error{errors.New("connection refused")}}
	s := newTestService(llm, nil, &recorderChat{}, false, true)

	_, err := s.Classify(context.Background(), testLead())
	if err == nil {
		t.Fatal("Expected an error")
	}
	if llm.calls != 1 {
		t.Errorf("Expected no retry on transport error, got %d calls", llm.calls)
	}
	var cerr *ClassifierError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *ClassifierError, got %T", err)
	}
	if cerr.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", cerr.Attempts)
	}
}

func TestEvaluateEnrichesOnlyPromisingLeads(t *testing.T) {
	for _, label := range []string{"spam", "solicitation"} {
		llm := &mockLLM{responses: []string{
			`{"label": "` + label + `", "confidence": 0.9, "reason": "r"}`,
		}}
		enricher := &spyEnricher{}
		s := newTestService(llm, enricher, &recorderChat{}, true, true)

		if _, err := s.Evaluate(context.Background(), testLead()); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if enricher.calls != 0 {
			t.Errorf("Label %s: expected no enrichment, got %d calls", label, enricher.calls)
		}
	}

	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.9, "reason": "r"}`,
	}}
	enricher := &spyEnricher{result: &EnrichedClassification{
		Classification:  Classification{Label: LabelPromising, Confidence: 0.9, Reason: "r"},
		ResearchSummary: "strong fit",
	}}
	s := newTestService(llm, enricher, &recorderChat{}, true, true)

	result, err := s.Evaluate(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enricher.calls != 1 {
		t.Errorf("Expected 1 enrichment call, got %d", enricher.calls)
	}
	if _, ok := result.Verdict.(*EnrichedClassification); !ok {
		t.Errorf("Expected enriched verdict, got %T", result.Verdict)
	}
	if !strings.Contains(result.Reply, "strong fit") {
		t.Errorf("Expected reply to carry research summary, got %q", result.Reply)
	}
}

func TestEvaluateEnrichmentDisabled(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.9, "reason": "r"}`,
	}}
	enricher := &spyEnricher{}
	s := newTestService(llm, enricher, &recorderChat{}, false, true)

	if _, err := s.Evaluate(context.Background(), testLead()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enricher.calls != 0 {
		t.Errorf("Expected no enrichment when disabled, got %d calls", enricher.calls)
	}
}

func TestEvaluateEnrichmentFailureIsNonFatal(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.9, "reason": "solid inquiry"}`,
	}}
	enricher := &spyEnricher{err: errors.New("search quota exceeded")}
	s := newTestService(llm, enricher, &recorderChat{}, true, true)

	result, err := s.Evaluate(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := result.Verdict.(*Classification); !ok {
		t.Errorf("Expected plain classification after enrichment failure, got %T", result.Verdict)
	}
	if !strings.Contains(result.Reply, "solid inquiry") {
		t.Errorf("Expected plain reply, got %q", result.Reply)
	}
}

func TestEvaluateNoResearchDataKeepsPlainVerdict(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.9, "reason": "r"}`,
	}}
	enricher := &spyEnricher{} // returns nil, nil
	s := newTestService(llm, enricher, &recorderChat{}, true, true)

	result, err := s.Evaluate(context.Background(), testLead())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := result.Verdict.(*Classification); !ok {
		t.Errorf("Expected plain classification when research found nothing, got %T", result.Verdict)
	}
}

func TestProcessPostsThreadedReply(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "promising", "confidence": 0.82, "reason": "genuine budget-backed inquiry"}`,
	}}
	chat := &recorderChat{}
	s := newTestService(llm, nil, chat, false, false)

	s.Process(context.Background(), &InboundEvent{
		Type:      "message",
		Channel:   "C123",
		Text:      "We need help with a data migration",
		Timestamp: "100.0",
	})

	if len(chat.posts) != 1 {
		t.Fatalf("Expected 1 posted reply, got %d", len(chat.posts))
	}
	if !strings.Contains(chat.posts[0], "🟢 *PROMISING* (82%)") {
		t.Errorf("Unexpected reply: %q", chat.posts[0])
	}
}

func TestProcessDryRunSuppressesPosting(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"label": "spam", "confidence": 1.0, "reason": "junk"}`,
	}}
	chat := &recorderChat{}
	s := newTestService(llm, nil, chat, false, true)

	s.Process(context.Background(), &InboundEvent{
		Type:      "message",
		Channel:   "C123",
		Text:      "buy backlinks now",
		Timestamp: "100.0",
	})

	if len(chat.posts) != 0 {
		t.Errorf("Expected no posts in dry run, got %d", len(chat.posts))
	}
	if llm.calls != 1 {
		t.Errorf("Expected classification to still run, got %d calls", llm.calls)
	}
}

func TestProcessSkipsIneligibleEvents(t *testing.T) {
	llm := &mockLLM{}
	s := newTestService(llm, nil, &recorderChat{}, false, false)

	s.Process(context.Background(), &InboundEvent{
		Type:            "message",
		Channel:         "C123",
		Text:            "follow-up in thread",
		Timestamp:       "101.0",
		ThreadTimestamp: "100.0",
	})

	if llm.calls != 0 {
		t.Errorf("Expected no LLM calls for ineligible event, got %d", llm.calls)
	}
}

func TestProcessDropsEventOnClassificationFailure(t *testing.T) {
	llm := &mockLLM{errs: []error{errors.New("boom")}}
	chat := &recorderChat{}
	s := newTestService(llm, nil, chat, false, false)

	s.Process(context.Background(), &InboundEvent{
		Type:      "message",
		Channel:   "C123",
		Text:      "hello",
		Timestamp: "100.0",
	})

	if len(chat.posts) != 0 {
		t.Errorf("Expected no reply after classification failure, got %d", len(chat.posts))
	}
}

func TestNewClassificationValidation(t *testing.T) {
	if _, err := NewClassification("promising", 0.5, "r", ""); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := NewClassification("urgent", 0.5, "r", ""); err == nil {
		t.Error("Expected invalid label to be rejected")
	}
	if _, err := NewClassification("spam", 1.2, "r", ""); err == nil {
		t.Error("Expected out-of-range confidence to be rejected")
	}
	if _, err := NewClassification("spam", -0.1, "r", ""); err == nil {
		t.Error("Expected negative confidence to be rejected")
	}
	if _, err := NewClassification("spam", 0.5, "", ""); err == nil {
		t.Error("Expected empty reason to be rejected")
	}
}
