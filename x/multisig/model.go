package multisig

import (
	"bytes"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Proposal is an action awaiting approval. See codec.proto for the wire
// declaration.
type Proposal struct {
	ID         uint64         `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Target     string         `protobuf:"bytes,2,opt,name=target,proto3" json:"target"`
	Payload    []byte         `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload"`
	Proposer   quorum.Address `protobuf:"bytes,4,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer"`
	Approvals  [][]byte       `protobuf:"bytes,5,rep,name=approvals,proto3" json:"-"`
	Executed   bool           `protobuf:"varint,6,opt,name=executed,proto3" json:"executed"`
	CreatedAt  int64          `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3" json:"created_at"`
	ExecutedAt int64          `protobuf:"varint,8,opt,name=executed_at,json=executedAt,proto3" json:"executed_at,omitempty"`
	ExecutedBy quorum.Address `protobuf:"bytes,9,opt,name=executed_by,json=executedBy,proto3,casttype=github.com/iov-one/quorum.Address" json:"executed_by,omitempty"`
	Result     []byte         `protobuf:"bytes,10,opt,name=result,proto3" json:"result,omitempty"`
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Reset()         { *p = Proposal{} }
func (p *Proposal) String() string { return proto.CompactTextString(p) }
func (*Proposal) ProtoMessage()    {}

const maxTargetLength = 128

var isTarget = regexp.MustCompile(`^[\x21-\x7e]+$`).MatchString

// Validate checks that the proposal is well formed.
func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Target", validateTarget(p.Target))
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())

	seen := make(map[string]struct{}, len(p.Approvals))
	for i, a := range p.Approvals {
		if err := quorum.Address(a).Validate(); err != nil {
			errs = errors.AppendField(errs, "Approvals", errors.Wrapf(err, "approval %d", i))
			continue
		}
		if _, ok := seen[string(a)]; ok {
			errs = errors.AppendField(errs, "Approvals", errors.Wrapf(errors.ErrDuplicate, "approval %d", i))
		}
		seen[string(a)] = struct{}{}
	}

	if p.Executed {
		if p.ExecutedBy == nil {
			errs = errors.AppendField(errs, "ExecutedBy", errors.Wrap(errors.ErrEmpty, "executed proposal"))
		}
	} else if p.ExecutedBy != nil || p.ExecutedAt != 0 || p.Result != nil {
		errs = errors.AppendField(errs, "Executed", errors.Wrap(errors.ErrState, "execution data on a pending proposal"))
	}

	return errors.Wrap(errs, "proposal")
}

func validateTarget(t string) error {
	switch {
	case t == "":
		return errors.Wrap(errors.ErrEmpty, "target")
	case len(t) > maxTargetLength:
		return errors.Wrapf(errors.ErrInput, "target longer than %d", maxTargetLength)
	case !isTarget(t):
		return errors.Wrap(errors.ErrInput, "target must be printable without spaces")
	}
	return nil
}

// HasApproved returns true if the owner approved this proposal.
func (p *Proposal) HasApproved(owner quorum.Address) bool {
	for _, a := range p.Approvals {
		if bytes.Equal(a, owner) {
			return true
		}
	}
	return false
}

// ApprovalCount returns the number of distinct approvals.
func (p *Proposal) ApprovalCount() uint32 {
	return uint32(len(p.Approvals))
}

// Executable returns true if the proposal is pending and has at least
// threshold approvals.
func (p *Proposal) Executable(threshold uint32) bool {
	return !p.Executed && p.ApprovalCount() >= threshold
}

// Approvers returns the approvals as addresses.
func (p *Proposal) Approvers() []quorum.Address {
	res := make([]quorum.Address, len(p.Approvals))
	for i, a := range p.Approvals {
		res[i] = quorum.Address(a).Clone()
	}
	return res
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() *Proposal {
	approvals := make([][]byte, len(p.Approvals))
	for i, a := range p.Approvals {
		approvals[i] = append([]byte(nil), a...)
	}
	return &Proposal{
		ID:         p.ID,
		Target:     p.Target,
		Payload:    cloneBytes(p.Payload),
		Proposer:   p.Proposer.Clone(),
		Approvals:  approvals,
		Executed:   p.Executed,
		CreatedAt:  p.CreatedAt,
		ExecutedAt: p.ExecutedAt,
		ExecutedBy: p.ExecutedBy.Clone(),
		Result:     cloneBytes(p.Result),
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
