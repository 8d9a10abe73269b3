// Package notify emits observability events for ticket and escrow
// activity. Emission is best-effort: a failed publish never fails the
// operation that triggered it.
package notify

import "context"

// Publisher delivers one event message to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message map[string]any)
}

// Noop drops every message. Used in tests and when no publisher is
// configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, map[string]any) {}

// Recorder captures published messages for test assertions.
type Recorder struct {
	Messages []RecordedMessage
}

type RecordedMessage struct {
	Channel string
	Message map[string]any
}

func (r *Recorder) Publish(_ context.Context, channel string, message map[string]any) {
	r.Messages = append(r.Messages, RecordedMessage{Channel: channel, Message: message})
}
