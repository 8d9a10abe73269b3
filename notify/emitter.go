package notify

import "context"

// Emitter binds a Publisher to one channel and stamps every message with
// its event type. Nil-safe so services can run without notifications.
type Emitter struct {
	pub     Publisher
	channel string
}

func NewEmitter(pub Publisher, channel string) *Emitter {
	return &Emitter{pub: pub, channel: channel}
}

func (e *Emitter) Emit(ctx context.Context, eventType string, fields map[string]any) {
	if e == nil || e.pub == nil {
		return
	}
	message := map[string]any{"type": eventType}
	for k, v := range fields {
		message[k] = v
	}
	e.pub.Publish(ctx, e.channel, message)
}
