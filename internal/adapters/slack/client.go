package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/core"
)

// SlackClient is an implementation of the ChatClient interface using the
// Slack Web API.
type SlackClient struct {
	api    *slack.Client
	logger *zap.Logger
}

// NewSlackClient creates a new Slack client
func NewSlackClient(api *slack.Client, logger *zap.Logger) *SlackClient {
	return &SlackClient{
		api:    api,
		logger: logger,
	}
}

// PostMessage posts text into a channel, as a thread reply when threadTS is set
func (c *SlackClient) PostMessage(ctx context.Context, channel, threadTS, text string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return fmt.Errorf("failed to post message to %s: %w", channel, err)
	}

	c.logger.Debug("Posted message",
		zap.String("channel", channel),
		zap.String("thread_ts", threadTS),
		zap.String("ts", ts))
	return nil
}

// FetchHistory retrieves up to limit recent channel messages as inbound events
func (c *SlackClient) FetchHistory(ctx context.Context, channel string, limit int) ([]core.InboundEvent, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", channel, err)
	}

	events := make([]core.InboundEvent, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		events = append(events, messageToEvent(channel, msg))
	}
	return events, nil
}

// messageToEvent converts a Slack history message into the inbound event
// shape the pipeline consumes. History messages omit the channel, so it is
// filled in from the request.
func messageToEvent(channel string, msg slack.Message) core.InboundEvent {
	ev := core.InboundEvent{
		Type:            msg.Type,
		Subtype:         msg.SubType,
		Channel:         channel,
		User:            msg.User,
		Username:        msg.Username,
		BotID:           msg.BotID,
		Text:            msg.Text,
		Timestamp:       msg.Timestamp,
		ThreadTimestamp: msg.ThreadTimestamp,
	}
	for _, att := range msg.Attachments {
		converted := core.Attachment{
			Title: att.Title,
			Text:  att.Text,
		}
		for _, field := range att.Fields {
			converted.Fields = append(converted.Fields, core.AttachmentField{
				Title: field.Title,
				Value: field.Value,
			})
		}
		ev.Attachments = append(ev.Attachments, converted)
	}
	return ev
}
