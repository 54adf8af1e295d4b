package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/victoragudo/hotel-management-system/internal/domain/event"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func newTestBus() *Bus {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	bus := newTestBus()
	var calls []string

	bus.Subscribe("a", "first", event.HandlerFunc(func(context.Context, event.Event) error {
		calls = append(calls, "first")
		return nil
	}))
	bus.Subscribe("a", "second", event.HandlerFunc(func(context.Context, event.Event) error {
		calls = append(calls, "second")
		return nil
	}))
	bus.Subscribe("b", "other", event.HandlerFunc(func(context.Context, event.Event) error {
		calls = append(calls, "other")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{name: "a"})

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBus_SubscriberFailuresAreIsolated(t *testing.T) {
	bus := newTestBus()
	delivered := false

	bus.Subscribe("a", "panics", event.HandlerFunc(func(context.Context, event.Event) error {
		panic("boom")
	}))
	bus.Subscribe("a", "fails", event.HandlerFunc(func(context.Context, event.Event) error {
		return errors.New("store down")
	}))
	bus.Subscribe("a", "works", event.HandlerFunc(func(context.Context, event.Event) error {
		delivered = true
		return nil
	}))

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "a"})
	})
	assert.True(t, delivered)
}

func TestBus_SubscribersOutliveCancelledContext(t *testing.T) {
	bus := newTestBus()
	var seen error

	bus.Subscribe("a", "ctx", event.HandlerFunc(func(ctx context.Context, _ event.Event) error {
		seen = ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{name: "a"})

	assert.NoError(t, seen)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := newTestBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "nobody"})
	})
}
