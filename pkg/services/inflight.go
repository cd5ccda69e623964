package services

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancellation cause of a fetch replaced by a newer one for the same key.
var ErrSuperseded = errors.New("superseded by a newer request")

type inflightCall struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

// Inflight tracks the latest fetch per key (one key per visitor). Starting a
// fetch cancels the one it replaces, so only the last issued fetch renders.
type Inflight struct {
	mu    sync.Mutex
	seq   uint64
	calls map[string]inflightCall
}

func NewInflight() *Inflight {
	return &Inflight{calls: make(map[string]inflightCall)}
}

// Begin derives a context for a new fetch under key and cancels the previous
// one with ErrSuperseded. The returned done func must be called when the fetch ends.
func (f *Inflight) Begin(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)

	f.mu.Lock()
	f.seq++
	seq := f.seq
	if prev, ok := f.calls[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	f.calls[key] = inflightCall{seq: seq, cancel: cancel}
	f.mu.Unlock()

	done := func() {
		f.mu.Lock()
		if cur, ok := f.calls[key]; ok && cur.seq == seq {
			delete(f.calls, key)
		}
		f.mu.Unlock()
		cancel(context.Canceled)
	}
	return ctx, done
}

// Cancel aborts the fetch running under key, if any.
func (f *Inflight) Cancel(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.calls[key]; ok {
		cur.cancel(ErrSuperseded)
		delete(f.calls, key)
	}
}

// Len returns the number of fetches in flight.
func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Superseded reports whether ctx was cancelled because a newer fetch replaced it.
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrSuperseded)
}
