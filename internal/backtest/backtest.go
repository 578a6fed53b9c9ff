package backtest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/core"
)

// Runner replays historical channel messages through the classification
// pipeline for offline evaluation. Results are only reported, never posted.
type Runner struct {
	service   *core.LeadService
	chat      core.ChatClient
	filter    *core.EventFilter
	extractor *core.LeadExtractor
	channels  []string
	logger    *zap.Logger
	out       io.Writer
}

// NewRunner creates a new backtest runner
func NewRunner(
	service *core.LeadService,
	chat core.ChatClient,
	filter *core.EventFilter,
	extractor *core.LeadExtractor,
	channels []string,
	logger *zap.Logger,
	out io.Writer,
) *Runner {
	return &Runner{
		service:   service,
		chat:      chat,
		filter:    filter,
		extractor: extractor,
		channels:  channels,
		logger:    logger,
		out:       out,
	}
}

// Run classifies up to limit historical messages per configured channel
func (r *Runner) Run(ctx context.Context, limit int) error {
	if len(r.channels) == 0 {
		return fmt.Errorf("no channels configured for backtest")
	}

	fmt.Fprintf(r.out, "Backtesting last %d messages\n\n", limit)

	processed := 0
	for _, channel := range r.channels {
		events, err := r.chat.FetchHistory(ctx, channel, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}

		for i := range events {
			ev := &events[i]
			if !r.filter.Eligible(ev) {
				continue
			}
			lead := r.extractor.Extract(ev)
			if lead == nil {
				r.logger.Debug("Skipping history message with no lead fields",
					zap.String("ts", ev.Timestamp))
				continue
			}

			result, err := r.service.Evaluate(ctx, lead)
			if err != nil {
				r.logger.Error("Classification failed during backtest",
					zap.String("ts", ev.Timestamp),
					zap.Error(err))
				continue
			}

			processed++
			r.report(lead, result)
		}
	}

	if processed == 0 {
		fmt.Fprintln(r.out, "No classifiable leads found in channel history.")
		fmt.Fprintln(r.out, "Make sure the bot is invited to the channel and leads are posted there.")
		return nil
	}

	fmt.Fprintf(r.out, "\nProcessed %d lead(s)\n", processed)
	return nil
}

// report prints one lead's details and classification
func (r *Runner) report(lead *core.Lead, result *core.ProcessedLead) {
	fmt.Fprintln(r.out, strings.Repeat("-", 60))
	if name := lead.FullName(); name != "Unknown" {
		fmt.Fprintf(r.out, "Name: %s\n", name)
	}
	if lead.Email != "" {
		fmt.Fprintf(r.out, "Email: %s\n", lead.Email)
	}
	if lead.Company != "" {
		fmt.Fprintf(r.out, "Company: %s\n", lead.Company)
	}
	if lead.Message != "" {
		preview := lead.Message
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		fmt.Fprintf(r.out, "Message: %s\n", preview)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, result.Reply)
}
