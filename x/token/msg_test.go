package token

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgValidate(t *testing.T) {
	alice := weavetest.SequenceAddress(1)
	bert := weavetest.SequenceAddress(2)

	cases := map[string]struct {
		msg     Msg
		wantErr map[string]*errors.Error
	}{
		"valid mint": {
			msg: &MintMsg{To: alice, Amount: "100"},
		},
		"mint without recipient": {
			msg:     &MintMsg{Amount: "100"},
			wantErr: map[string]*errors.Error{"To": errors.ErrEmpty, "Amount": nil},
		},
		"mint zero": {
			msg:     &MintMsg{To: alice, Amount: "0"},
			wantErr: map[string]*errors.Error{"Amount": errors.ErrAmount},
		},
		"valid transfer": {
			msg: &TransferMsg{From: alice, To: bert, Amount: "1"},
		},
		"transfer to self": {
			msg:     &TransferMsg{From: alice, To: alice, Amount: "1"},
			wantErr: map[string]*errors.Error{"To": errors.ErrInput},
		},
		"transfer fraction": {
			msg:     &TransferMsg{From: alice, To: bert, Amount: "0.5"},
			wantErr: map[string]*errors.Error{"Amount": errors.ErrAmount},
		},
		"pause": {
			msg: &PauseMsg{},
		},
		"unpause": {
			msg: &UnpauseMsg{},
		},
		"remove cap": {
			msg: &SetCapMsg{Cap: "0"},
		},
		"negative cap": {
			msg:     &SetCapMsg{Cap: "-5"},
			wantErr: map[string]*errors.Error{"Cap": errors.ErrAmount},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if len(tc.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			for field, want := range tc.wantErr {
				weavetest.FieldError(t, err, field, want)
			}
		})
	}
}

func TestNewMsg(t *testing.T) {
	for _, path := range []string{PathMint, PathTransfer, PathPause, PathUnpause, PathSetCap} {
		msg, ok := NewMsg(path)
		require.True(t, ok, path)
		assert.Equal(t, path, msg.Path())
	}
	_, ok := NewMsg("token/burn")
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	msg := &TransferMsg{
		From:   weavetest.SequenceAddress(1),
		To:     weavetest.SequenceAddress(2),
		Amount: "1500",
	}
	raw, err := Encode(msg)
	require.NoError(t, err)

	var got TransferMsg
	require.NoError(t, decode(raw, &got))
	assert.Equal(t, msg, &got)

	_, err = Encode(&MintMsg{Amount: "1"})
	weavetest.IsErr(t, errors.ErrEmpty, err)

	err = decode([]byte{0xff, 0xff, 0xff}, &got)
	weavetest.IsErr(t, errors.ErrMsg, err)
}
