package token

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t testing.TB, m Msg) []byte {
	t.Helper()
	raw, err := Encode(m)
	require.NoError(t, err)
	return raw
}

func TestRegisterRoutes(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, "100", "")
	r := app.NewRouter()
	RegisterRoutes(r, c)
	assert.Equal(t, 5, r.Paths())

	alice, bert := weavetest.SequenceAddress(1), weavetest.SequenceAddress(2)

	cases := []struct {
		path    string
		msg     Msg
		wantErr *errors.Error
	}{
		{PathMint, &MintMsg{To: bert, Amount: "10"}, nil},
		{PathTransfer, &TransferMsg{From: alice, To: bert, Amount: "5"}, nil},
		{PathPause, &PauseMsg{}, nil},
		{PathMint, &MintMsg{To: bert, Amount: "10"}, errors.ErrState},
		{PathPause, &PauseMsg{}, errors.ErrState},
		{PathUnpause, &UnpauseMsg{}, nil},
		{PathSetCap, &SetCapMsg{Cap: "115"}, nil},
		{PathMint, &MintMsg{To: bert, Amount: "6"}, ErrCapExceeded},
		{PathTransfer, &TransferMsg{From: bert, To: alice, Amount: "16"}, errors.ErrInsufficientAmount},
	}
	for i, tc := range cases {
		_, err := r.Apply(ctx, tc.path, mustEncode(t, tc.msg))
		if tc.wantErr == nil {
			require.NoError(t, err, "step %d", i)
		} else {
			require.True(t, tc.wantErr.Is(err), "step %d: got %v", i, err)
		}
	}

	assertBalance(t, c, 1, "95")
	assertBalance(t, c, 2, "15")

	// Payload of another message kind is rejected.
	_, err := r.Apply(ctx, PathMint, mustEncode(t, &SetCapMsg{Cap: "1"}))
	require.Error(t, err)
}

// TestGatedMint follows the deployment of the d42 token: a 2 of 2 wallet
// owns the ledger and a mint only happens once both owners approved it.
func TestGatedMint(t *testing.T) {
	ctx := context.Background()
	owners := weavetest.Owners(2)
	owner, other := owners[0], owners[1]

	ctrl := NewController(store.MemStore(), nil)
	require.NoError(t, ctrl.Init(Genesis{
		Name:          "d42",
		Symbol:        "D42",
		Decimals:      DefaultDecimals,
		Holder:        owner,
		InitialSupply: "1000000000000000000000",
	}))
	r := app.NewRouter()
	RegisterRoutes(r, ctrl)

	reg, err := multisig.NewRegistry(owners, 2)
	require.NoError(t, err)
	coord := multisig.NewCoordinator(store.MemStore(), reg, r)

	amount, err := ParseUnits("100", DefaultDecimals)
	require.NoError(t, err)
	payload := mustEncode(t, &MintMsg{To: other, Amount: formatAmount(amount)})

	id, err := coord.Submit(ctx, PathMint, payload, owner)
	require.NoError(t, err)
	require.NoError(t, coord.Approve(ctx, id, owner))

	_, err = coord.Execute(ctx, id, owner)
	weavetest.IsErr(t, multisig.ErrInsufficientApprovals, err)
	assertBalance(t, ctrl, 2, "0")

	require.NoError(t, coord.Approve(ctx, id, other))
	p, err := coord.Execute(ctx, id, other)
	require.NoError(t, err)

	supply, err := ctrl.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, "1100", FormatUnits(supply, DefaultDecimals))
	assert.Equal(t, formatAmount(supply), string(p.Result))

	bal, err := ctrl.Balance(other)
	require.NoError(t, err)
	assert.Equal(t, "100", FormatUnits(bal, DefaultDecimals))

	_, err = coord.Execute(ctx, id, owner)
	weavetest.IsErr(t, multisig.ErrAlreadyExecuted, err)
	supply, err = ctrl.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, "1100", FormatUnits(supply, DefaultDecimals))
}

// TestRejectedMintCanBeRetried pauses the ledger so that the approved mint
// is rejected, then retries it once the ledger is unpaused.
func TestRejectedMintCanBeRetried(t *testing.T) {
	ctx := context.Background()
	owners := weavetest.Owners(2)
	ctrl := newTestController(t, "0", "")
	r := app.NewRouter()
	RegisterRoutes(r, ctrl)
	reg, err := multisig.NewRegistry(owners, 1)
	require.NoError(t, err)
	coord := multisig.NewCoordinator(store.MemStore(), reg, r)

	pause, err := coord.Submit(ctx, PathPause, mustEncode(t, &PauseMsg{}), owners[0])
	require.NoError(t, err)
	mint, err := coord.Submit(ctx, PathMint, mustEncode(t, &MintMsg{To: owners[1], Amount: "7"}), owners[0])
	require.NoError(t, err)
	unpause, err := coord.Submit(ctx, PathUnpause, mustEncode(t, &UnpauseMsg{}), owners[1])
	require.NoError(t, err)
	for _, id := range []uint64{pause, mint, unpause} {
		require.NoError(t, coord.Approve(ctx, id, owners[1]))
	}

	_, err = coord.Execute(ctx, pause, owners[0])
	require.NoError(t, err)

	_, err = coord.Execute(ctx, mint, owners[0])
	weavetest.IsErr(t, multisig.ErrExecutorFailure, err)
	var execErr *multisig.ExecutorError
	require.ErrorAs(t, err, &execErr)
	weavetest.IsErr(t, errors.ErrState, execErr.Err)

	_, err = coord.Execute(ctx, unpause, owners[0])
	require.NoError(t, err)
	_, err = coord.Execute(ctx, mint, owners[0])
	require.NoError(t, err)

	bal, err := ctrl.Balance(owners[1])
	require.NoError(t, err)
	assert.Equal(t, "7", formatAmount(bal))
}
