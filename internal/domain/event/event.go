package event

import "context"

type Event interface {
	EventName() string
}

// Publisher delivers events to in-process subscribers. It reports nothing back:
// whatever a subscriber does, the caller's committed work stands.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Handler interface {
	Handle(ctx context.Context, e Event) error
}

type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}
