package notify

import (
	"context"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"
)

// PubNubConfig holds the keys for the notification channel.
type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
	UserID       string
}

// PubNub publishes events through a PubNub channel.
type PubNub struct {
	pn *pubnub.PubNub
}

func NewPubNub(cfg PubNubConfig) *PubNub {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.UserID))
	pnCfg.PublishKey = cfg.PublishKey
	pnCfg.SubscribeKey = cfg.SubscribeKey

	return &PubNub{pn: pubnub.NewPubNub(pnCfg)}
}

func (p *PubNub) Publish(_ context.Context, channel string, message map[string]any) {
	_, _, err := p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	if err != nil {
		slog.Error("publish notification", "channel", channel, "error", err)
	}
}
