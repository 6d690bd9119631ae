package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

type Event string

const (
	// EventReady fires once when the companion starts.
	EventReady Event = "ready"
	// EventAppMessage fires on every request for fresh data from the watch.
	EventAppMessage Event = "appmessage"
)

var ErrBusClosed = errors.New("trigger bus is shut down")

type Handler func(ctx context.Context, event Event) error

type TriggerBus interface {
	Subscribe(event Event, handler Handler)
	Publish(event Event) error
	Shutdown(ctx context.Context) error
}

type triggerBus struct {
	baseCtx  context.Context
	handlers map[Event][]Handler
	mu       sync.RWMutex
	inFlight sync.WaitGroup
	closed   bool
}

// NewTriggerBus returns a bus whose runs inherit values from baseCtx.
// Runs are not canceled when the bus shuts down; Shutdown only waits for them.
func NewTriggerBus(baseCtx context.Context) TriggerBus {
	return &triggerBus{
		baseCtx:  context.WithoutCancel(baseCtx),
		handlers: make(map[Event][]Handler),
	}
}

func (b *triggerBus) Subscribe(event Event, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish starts every handler subscribed to event in its own goroutine and
// returns without waiting. Runs already in flight are left alone, so two
// quick publishes can finish out of order.
func (b *triggerBus) Publish(event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	handlers := b.handlers[event]
	if len(handlers) == 0 {
		log.Warn().Str("event", string(event)).Msg("no subscribers for event")
		return nil
	}

	log.Info().Str("event", string(event)).Msg("received event")

	for _, handler := range handlers {
		b.inFlight.Add(1)
		go func(h Handler) {
			defer b.inFlight.Done()

			// run failures are logged by the pipeline where they happen
			if err := h(b.baseCtx, event); err != nil && KindOf(err) == "" {
				log.Warn().Err(err).Str("event", string(event)).Msg("handler failed")
			}
		}(handler)
	}

	return nil
}

func (b *triggerBus) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
