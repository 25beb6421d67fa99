package timeutil

import (
	"context"
	"sync"
	"time"

	"github.com/gamehive/observer/runtime/options"
)

// Ticker is a task that gets executed repeatedly. It drops ticks to make up for slow executions.
type Ticker struct {
	ctx              context.Context
	ctxCancel        context.CancelFunc
	handler          func()
	interval         time.Duration
	gracefulShutdown sync.WaitGroup

	optsParentCtx     context.Context
	optsImmediateTick bool
	optsCondition     func() bool
}

// NewTicker creates a new Ticker from the given details and starts it. The interval must be greater than zero; if not,
// NewTicker will panic.
func NewTicker(handler func(), interval time.Duration, opts ...options.Option[Ticker]) *Ticker {
	ticker := options.Apply(&Ticker{
		handler:       handler,
		interval:      interval,
		optsParentCtx: context.Background(),
	}, opts)

	ticker.ctx, ticker.ctxCancel = context.WithCancel(ticker.optsParentCtx)

	ticker.gracefulShutdown.Add(1)
	go ticker.run()

	return ticker
}

// WithContext stops the Ticker once the given context is done.
func WithContext(ctx context.Context) options.Option[Ticker] {
	return func(t *Ticker) {
		t.optsParentCtx = ctx
	}
}

// WithImmediateTick executes the handler once right after the Ticker was started.
func WithImmediateTick() options.Option[Ticker] {
	return func(t *Ticker) {
		t.optsImmediateTick = true
	}
}

// WithCondition is checked before every execution of the handler. The Ticker shuts itself down the first time the
// condition does not hold anymore.
func WithCondition(condition func() bool) options.Option[Ticker] {
	return func(t *Ticker) {
		t.optsCondition = condition
	}
}

// WaitForGracefulShutdown waits until the Ticker was shut down and the last handler has terminated.
func (t *Ticker) WaitForGracefulShutdown() {
	t.gracefulShutdown.Wait()
}

func (t *Ticker) run() {
	defer t.gracefulShutdown.Done()
	defer t.ctxCancel()

	if t.optsImmediateTick && !t.tick() {
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			if !t.tick() {
				return
			}
		}
	}
}

// tick executes the handler and returns false if the Ticker should stop.
func (t *Ticker) tick() bool {
	if t.ctx.Err() != nil {
		return false
	}

	if t.optsCondition != nil && !t.optsCondition() {
		return false
	}

	t.handler()

	return true
}
