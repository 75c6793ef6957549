package weavetest

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/quorum/x/multisig"
)

// Call is a single recorded executor invocation.
type Call struct {
	Target  string
	Payload []byte
}

// Executor is a multisig.Executor fake that records all calls. It is safe
// for concurrent use.
type Executor struct {
	// Effect is returned by every successful call.
	Effect multisig.Effect
	// Err, when set, is returned by every call.
	Err error
	// Delay is slept before returning, to widen race windows in tests.
	Delay time.Duration

	mu    sync.Mutex
	calls []Call
}

var _ multisig.Executor = (*Executor)(nil)

// Apply records the call and returns the configured result.
func (e *Executor) Apply(ctx context.Context, target string, payload []byte) (multisig.Effect, error) {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Target: target, Payload: append([]byte(nil), payload...)})
	res, err, delay := e.Effect, e.Err, e.Delay
	e.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return res, err
}

// SetErr changes the error returned by the following calls.
func (e *Executor) SetErr(err error) {
	e.mu.Lock()
	e.Err = err
	e.mu.Unlock()
}

// CallCount returns how many times Apply was called.
func (e *Executor) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

// Calls returns all recorded calls in order.
func (e *Executor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}
