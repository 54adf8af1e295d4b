package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/event"
)

type subscription struct {
	name    string
	handler event.Handler
}

// Bus dispatches events to subscribers synchronously, in registration order,
// on the publisher's goroutine. Delivery is at most once.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription
	logger        *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[string][]subscription),
		logger:        logger,
	}
}

func (b *Bus) Subscribe(eventName, name string, handler event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscriptions[eventName] = append(b.subscriptions[eventName], subscription{name: name, handler: handler})
	b.logger.Info("Event subscriber registered", "event", eventName, "subscriber", name)
}

// Publish never fails. Subscriber errors and panics are logged and the
// remaining subscribers still run.
func (b *Bus) Publish(ctx context.Context, e event.Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subscriptions[e.EventName()]...)
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("No subscribers for event", "event", e.EventName())
		return
	}

	// the request that triggered the event may finish before subscribers do
	dispatchCtx := context.WithoutCancel(ctx)
	for _, sub := range subs {
		b.dispatch(dispatchCtx, sub, e)
	}
}

func (b *Bus) dispatch(ctx context.Context, sub subscription, e event.Event) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event subscriber panicked",
				"event", e.EventName(),
				"subscriber", sub.name,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := sub.handler.Handle(ctx, e); err != nil {
		b.logger.Error("Event subscriber failed",
			"event", e.EventName(),
			"subscriber", sub.name,
			"error", err,
		)
		return
	}

	b.logger.Debug("Event delivered", "event", e.EventName(), "subscriber", sub.name, "duration", time.Since(startTime))
}
