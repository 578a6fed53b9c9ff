package core

import (
	"strings"
)

// IngestMode selects how inbound lead messages arrive
type IngestMode string

const (
	// ModePlain processes top-level plain-text messages
	ModePlain IngestMode = "plain"
	// ModeBotRelay processes structured messages relayed by a CRM bot
	ModeBotRelay IngestMode = "bot-relay"
)

// EventFilter decides whether an inbound event is eligible for processing.
// It is a pure predicate; malformed events are never eligible.
type EventFilter struct {
	mode          IngestMode
	channels      []string
	relaySubtype  string
	relayUsername string
}

// NewEventFilter creates a new event filter for the given ingest mode.
// An empty channel list accepts events from any channel.
func NewEventFilter(mode IngestMode, channels []string, relayUsername string) *EventFilter {
	return &EventFilter{
		mode:          mode,
		channels:      channels,
		relaySubtype:  "bot_message",
		relayUsername: relayUsername,
	}
}

// Eligible reports whether the event should enter the lead pipeline
func (f *EventFilter) Eligible(ev *InboundEvent) bool {
	if ev == nil || ev.Type != "message" {
		return false
	}
	if !f.channelAllowed(ev.Channel) {
		return false
	}
	// Thread replies are never leads, only top-level posts
	if ev.ThreadTimestamp != "" && ev.ThreadTimestamp != ev.Timestamp {
		return false
	}

	switch f.mode {
	case ModeBotRelay:
		if ev.Subtype != f.relaySubtype {
			return false
		}
		if !strings.EqualFold(ev.Username, f.relayUsername) {
			return false
		}
		// Relay bots carry the lead data in attachments
		if len(ev.Attachments) == 0 {
			return false
		}
		return true
	case ModePlain:
		if ev.Subtype != "" {
			return false
		}
		return strings.TrimSpace(ev.Text) != ""
	default:
		return false
	}
}

// channelAllowed checks the event channel against the configured set
func (f *EventFilter) channelAllowed(channel string) bool {
	if len(f.channels) == 0 {
		return true
	}
	for _, c := range f.channels {
		if c == channel {
			return true
		}
	}
	return false
}
