package engine

import (
	"context"
	"sync/atomic"
)

// CancelToken is polled by Step before every tick and before every agent.
// Returning true stops stepping at that point; it is not an error.
type CancelToken interface {
	Cancelled() bool
}

// CancelFunc adapts a predicate to a CancelToken. A nil func never cancels.
type CancelFunc func() bool

// Cancelled reports the predicate's result.
func (f CancelFunc) Cancelled() bool {
	return f != nil && f()
}

type never struct{}

func (never) Cancelled() bool { return false }

// Never is a token that never cancels.
var Never CancelToken = never{}

// StopFlag is a token flipped from another goroutine, typically a signal handler.
type StopFlag struct {
	stopped atomic.Bool
}

// Request asks the current Step to stop at its next poll.
func (f *StopFlag) Request() { f.stopped.Store(true) }

// Clear re-arms the flag before a new Step.
func (f *StopFlag) Clear() { f.stopped.Store(false) }

// Cancelled reports whether a stop was requested.
func (f *StopFlag) Cancelled() bool { return f.stopped.Load() }

// ContextToken cancels once ctx is done.
func ContextToken(ctx context.Context) CancelToken {
	return CancelFunc(func() bool { return ctx.Err() != nil })
}
