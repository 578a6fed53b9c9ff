package factory

import (
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"

	slackadapter "github.com/mikey/leads-agent/internal/adapters/slack"
	"github.com/mikey/leads-agent/internal/config"
	"github.com/mikey/leads-agent/internal/core"
)

// ChatFactory creates chat platform clients
type ChatFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewChatFactory creates a new chat factory
func NewChatFactory(cfg *config.Config, logger *zap.Logger) *ChatFactory {
	return &ChatFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateChatClient creates a new Slack-backed chat client
func (f *ChatFactory) CreateChatClient() (core.ChatClient, error) {
	slackCfg := f.cfg.GetSlack()
	api := slackapi.New(slackCfg.BotToken)
	return slackadapter.NewSlackClient(api, f.logger), nil
}
