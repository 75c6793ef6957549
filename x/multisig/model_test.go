package multisig_test

import (
	"strings"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalValidate(t *testing.T) {
	alice := weavetest.SequenceAddress(1)
	bert := weavetest.SequenceAddress(2)

	cases := map[string]struct {
		p       multisig.Proposal
		wantErr map[string]*errors.Error
	}{
		"pending": {
			p: multisig.Proposal{
				Target:    "token/mint",
				Payload:   []byte("payload"),
				Proposer:  alice,
				Approvals: [][]byte{alice, bert},
			},
		},
		"executed": {
			p: multisig.Proposal{
				Target:     "token/mint",
				Proposer:   alice,
				Approvals:  [][]byte{alice},
				Executed:   true,
				ExecutedAt: 1000,
				ExecutedBy: bert,
			},
		},
		"missing target": {
			p: multisig.Proposal{Proposer: alice},
			wantErr: map[string]*errors.Error{
				"Target": errors.ErrEmpty,
			},
		},
		"target with spaces": {
			p: multisig.Proposal{Target: "token mint", Proposer: alice},
			wantErr: map[string]*errors.Error{
				"Target": errors.ErrInput,
			},
		},
		"target too long": {
			p: multisig.Proposal{Target: strings.Repeat("x", 129), Proposer: alice},
			wantErr: map[string]*errors.Error{
				"Target": errors.ErrInput,
			},
		},
		"missing proposer": {
			p: multisig.Proposal{Target: "token/mint"},
			wantErr: map[string]*errors.Error{
				"Proposer": errors.ErrEmpty,
			},
		},
		"duplicated approval": {
			p: multisig.Proposal{
				Target:    "token/mint",
				Proposer:  alice,
				Approvals: [][]byte{alice, bert, alice},
			},
			wantErr: map[string]*errors.Error{
				"Approvals": errors.ErrDuplicate,
			},
		},
		"executed without executor": {
			p: multisig.Proposal{
				Target:   "token/mint",
				Proposer: alice,
				Executed: true,
			},
			wantErr: map[string]*errors.Error{
				"ExecutedBy": errors.ErrEmpty,
			},
		},
		"pending with result": {
			p: multisig.Proposal{
				Target:   "token/mint",
				Proposer: alice,
				Result:   []byte("done"),
			},
			wantErr: map[string]*errors.Error{
				"Executed": errors.ErrState,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.p.Validate()
			if len(tc.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for field, want := range tc.wantErr {
				weavetest.FieldError(t, err, field, want)
			}
		})
	}
}

func TestProposalApprovals(t *testing.T) {
	owners := weavetest.Owners(3)
	p := multisig.Proposal{
		Target:    "token/pause",
		Proposer:  owners[0],
		Approvals: [][]byte{owners[0], owners[2]},
	}

	assert.True(t, p.HasApproved(owners[0]))
	assert.False(t, p.HasApproved(owners[1]))
	assert.Equal(t, uint32(2), p.ApprovalCount())
	assert.True(t, p.Executable(2))
	assert.False(t, p.Executable(3))

	p.Executed = true
	assert.False(t, p.Executable(2))
}

func TestProposalCopy(t *testing.T) {
	owners := weavetest.Owners(2)
	p := &multisig.Proposal{
		ID:        3,
		Target:    "token/mint",
		Payload:   []byte{1, 2, 3},
		Proposer:  owners[0],
		Approvals: [][]byte{owners[0]},
	}
	cpy := p.Copy()
	assert.Equal(t, p, cpy)

	cpy.Payload[0] = 9
	cpy.Approvals[0][0] ^= 0xff
	assert.Equal(t, []byte{1, 2, 3}, p.Payload)
	assert.True(t, p.HasApproved(owners[0]))
}

func TestProposalCodec(t *testing.T) {
	owners := weavetest.Owners(2)
	p := &multisig.Proposal{
		ID:         7,
		Target:     "token/transfer",
		Payload:    []byte(`{"amount":"1"}`),
		Proposer:   owners[0],
		Approvals:  [][]byte{owners[0], owners[1]},
		Executed:   true,
		CreatedAt:  1500,
		ExecutedAt: 1600,
		ExecutedBy: owners[1],
		Result:     []byte("ok"),
	}
	raw, err := proto.Marshal(p)
	require.NoError(t, err)

	var got multisig.Proposal
	require.NoError(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, p, &got)
	assert.NoError(t, got.Validate())
}
