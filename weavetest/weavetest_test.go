package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnersAreDistinctAndStable(t *testing.T) {
	a := Owners(5)
	b := Owners(5)
	require.Len(t, a, 5)
	seen := map[string]bool{}
	for i := range a {
		assert.True(t, a[i].Equals(b[i]))
		assert.NoError(t, a[i].Validate())
		assert.False(t, seen[string(a[i])])
		seen[string(a[i])] = true
	}
}

func TestParseAddress(t *testing.T) {
	a := SequenceAddress(7)
	enc, err := a.Bech32()
	require.NoError(t, err)
	assert.Equal(t, a, ParseAddress(t, enc))
	assert.Equal(t, a, ParseAddress(t, a.String()))
}

func TestExecutorRecordsCalls(t *testing.T) {
	var e Executor
	_, err := e.Apply(context.Background(), "token/mint", []byte("x"))
	require.NoError(t, err)

	e.SetErr(errors.ErrState)
	_, err = e.Apply(context.Background(), "token/pause", nil)
	IsErr(t, errors.ErrState, err)

	assert.Equal(t, 2, e.CallCount())
	assert.Equal(t, "token/mint", e.Calls()[0].Target)
}

func TestFieldError(t *testing.T) {
	err := errors.AppendField(nil, "Owners", errors.ErrEmpty)
	FieldError(t, err, "Owners", errors.ErrEmpty)
	FieldError(t, err, "Threshold", nil)
}
