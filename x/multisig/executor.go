package multisig

import (
	"context"
)

// Executor performs the action of a proposal once it is approved. The
// coordinator calls it at most once successfully per proposal.
//
// Target and payload are opaque to the coordinator. Any returned error marks
// the execution as failed and the proposal stays pending.
type Executor interface {
	Apply(ctx context.Context, target string, payload []byte) (Effect, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, target string, payload []byte) (Effect, error)

// Apply calls f.
func (f ExecutorFunc) Apply(ctx context.Context, target string, payload []byte) (Effect, error) {
	return f(ctx, target, payload)
}

// Effect is the outcome of a successful execution.
type Effect struct {
	// Data is stored with the proposal as its result.
	Data []byte
	// Log is a human readable description, only logged.
	Log string
}
