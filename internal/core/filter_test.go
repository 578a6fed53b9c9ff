package core

import (
	"testing"
)

func relayEvent() *InboundEvent {
	return &InboundEvent{
		Type:            "message",
		Subtype:         "bot_message",
		Channel:         "C123",
		Username:        "HubSpot",
		Timestamp:       "100.0",
		ThreadTimestamp: "100.0",
		Attachments: []Attachment{
			{Fields: []AttachmentField{{Title: "Email", Value: "a@b.com"}}},
		},
	}
}

func TestEventFilterBotRelayEligible(t *testing.T) {
	f := NewEventFilter(ModeBotRelay, []string{"C123"}, "HubSpot")

	if !f.Eligible(relayEvent()) {
		t.Error("Expected relay event to be eligible")
	}
}

func TestEventFilterRejectsThreadReplies(t *testing.T) {
	f := NewEventFilter(ModeBotRelay, []string{"C123"}, "HubSpot")

	ev := relayEvent()
	ev.ThreadTimestamp = "99.0"
	if f.Eligible(ev) {
		t.Error("Expected thread reply to be rejected")
	}

	// thread_ts equal to ts marks the thread parent, which is eligible
	ev = relayEvent()
	ev.ThreadTimestamp = ev.Timestamp
	if !f.Eligible(ev) {
		t.Error("Expected thread parent to be eligible")
	}
}

func TestEventFilterBotRelayRequirements(t *testing.T) {
	f := NewEventFilter(ModeBotRelay, []string{"C123"}, "HubSpot")

	ev := relayEvent()
	ev.Attachments = nil
	if f.Eligible(ev) {
		t.Error("Expected relay event without attachments to be rejected")
	}

	ev = relayEvent()
	ev.Username = "salesforce"
	if f.Eligible(ev) {
		t.Error("Expected relay event from wrong bot to be rejected")
	}

	// Username matching is case insensitive
	ev = relayEvent()
	ev.Username = "hubspot"
	if !f.Eligible(ev) {
		t.Error("Expected case-insensitive username match")
	}

	ev = relayEvent()
	ev.Subtype = ""
	if f.Eligible(ev) {
		t.Error("Expected non-bot message to be rejected in relay mode")
	}
}

func TestEventFilterChannelAllowList(t *testing.T) {
	f := NewEventFilter(ModeBotRelay, []string{"C123"}, "HubSpot")

	ev := relayEvent()
	ev.Channel = "C999"
	if f.Eligible(ev) {
		t.Error("Expected event from unlisted channel to be rejected")
	}

	// An empty channel list accepts any channel
	open := NewEventFilter(ModeBotRelay, nil, "HubSpot")
	if !open.Eligible(ev) {
		t.Error("Expected empty channel list to accept any channel")
	}
}

func TestEventFilterPlainMode(t *testing.T) {
	f := NewEventFilter(ModePlain, nil, "")

	ev := &InboundEvent{Type: "message", Channel: "C1", Text: "Hi, I need help with a project", Timestamp: "1.0"}
	if !f.Eligible(ev) {
		t.Error("Expected plain text message to be eligible")
	}

	ev = &InboundEvent{Type: "message", Channel: "C1", Text: "  ", Timestamp: "1.0"}
	if f.Eligible(ev) {
		t.Error("Expected whitespace-only message to be rejected")
	}

	ev = &InboundEvent{Type: "message", Subtype: "channel_join", Channel: "C1", Text: "joined", Timestamp: "1.0"}
	if f.Eligible(ev) {
		t.Error("Expected subtyped message to be rejected in plain mode")
	}
}

func TestEventFilterMalformedEvents(t *testing.T) {
	f := NewEventFilter(ModePlain, nil, "")

	if f.Eligible(nil) {
		t.Error("Expected nil event to be rejected")
	}
	if f.Eligible(&InboundEvent{Type: "reaction_added", Channel: "C1"}) {
		t.Error("Expected non-message event to be rejected")
	}
}
