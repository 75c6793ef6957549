package quorum

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLoggerContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx = WithLogger(ctx, logger)
	ctx = WithRequestID(ctx, "req-1")

	GetLogger(ctx).Info("hello", "who", "world")
	out := buf.String()
	assert.True(t, strings.Contains(out, "hello"), out)
	assert.True(t, strings.Contains(out, "request=req-1"), out)
	assert.True(t, strings.Contains(out, "who=world"), out)

	id, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)

	_, ok = GetRequestID(context.Background())
	assert.False(t, ok)
}
