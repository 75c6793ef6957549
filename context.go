package quorum

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

type contextKey int // local to the quorum module

const (
	contextKeyLogger contextKey = iota
	contextKeyRequestID
)

// WithLogger sets the logger for this request. Extensions retrieve it with
// GetLogger and enrich it with their own key values.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok || val == nil {
		return DefaultLogger
	}
	return val
}

// LoggerFrom returns the logger set for this request, if any.
func LoggerFrom(ctx context.Context) (log.Logger, bool) {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	return val, ok && val != nil
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// WithRequestID attaches a request identifier to the context. The identifier
// is also added to the context logger.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, contextKeyRequestID, id)
	return WithLogInfo(ctx, "request", id)
}

// GetRequestID returns the request identifier, if one was set.
func GetRequestID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(contextKeyRequestID).(string)
	return val, ok
}
