package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Action targets handled by this extension.
const (
	PathMint     = "token/mint"
	PathTransfer = "token/transfer"
	PathPause    = "token/pause"
	PathUnpause  = "token/unpause"
	PathSetCap   = "token/set_cap"
)

// Msg is an action payload of this extension.
type Msg interface {
	proto.Message
	Validate() error
	Path() string
}

// NewMsg returns an empty message for given target.
func NewMsg(path string) (Msg, bool) {
	switch path {
	case PathMint:
		return &MintMsg{}, true
	case PathTransfer:
		return &TransferMsg{}, true
	case PathPause:
		return &PauseMsg{}, true
	case PathUnpause:
		return &UnpauseMsg{}, true
	case PathSetCap:
		return &SetCapMsg{}, true
	}
	return nil, false
}

// MintMsg creates new tokens for the recipient.
type MintMsg struct {
	To     quorum.Address `protobuf:"bytes,1,opt,name=to,proto3,casttype=github.com/iov-one/quorum.Address" json:"to"`
	Amount string         `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}
func (*MintMsg) Path() string     { return PathMint }

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "To", m.To.Validate())
	_, err := parsePositive(m.Amount)
	errs = errors.AppendField(errs, "Amount", err)
	return errs
}

// TransferMsg moves tokens on behalf of From.
type TransferMsg struct {
	From   quorum.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/quorum.Address" json:"from"`
	To     quorum.Address `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/quorum.Address" json:"to"`
	Amount string         `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}
func (*TransferMsg) Path() string     { return PathTransfer }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	if m.From != nil && m.From.Equals(m.To) {
		errs = errors.AppendField(errs, "To", errors.Wrap(errors.ErrInput, "sender and recipient must differ"))
	}
	_, err := parsePositive(m.Amount)
	errs = errors.AppendField(errs, "Amount", err)
	return errs
}

// PauseMsg blocks minting and transfers.
type PauseMsg struct{}

func (m *PauseMsg) Reset()         { *m = PauseMsg{} }
func (m *PauseMsg) String() string { return proto.CompactTextString(m) }
func (*PauseMsg) ProtoMessage()    {}
func (*PauseMsg) Path() string     { return PathPause }
func (*PauseMsg) Validate() error  { return nil }

// UnpauseMsg lifts the pause.
type UnpauseMsg struct{}

func (m *UnpauseMsg) Reset()         { *m = UnpauseMsg{} }
func (m *UnpauseMsg) String() string { return proto.CompactTextString(m) }
func (*UnpauseMsg) ProtoMessage()    {}
func (*UnpauseMsg) Path() string     { return PathUnpause }
func (*UnpauseMsg) Validate() error  { return nil }

// SetCapMsg changes the maximum supply. Zero removes the cap.
type SetCapMsg struct {
	Cap string `protobuf:"bytes,1,opt,name=cap,proto3" json:"cap"`
}

func (m *SetCapMsg) Reset()         { *m = SetCapMsg{} }
func (m *SetCapMsg) String() string { return proto.CompactTextString(m) }
func (*SetCapMsg) ProtoMessage()    {}
func (*SetCapMsg) Path() string     { return PathSetCap }

func (m *SetCapMsg) Validate() error {
	_, err := ParseAmount(m.Cap)
	return errors.Field("Cap", err, "set cap")
}

// Encode serializes a message into a proposal payload.
func Encode(m Msg) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return raw, nil
}

// decode deserializes and validates a proposal payload.
func decode(payload []byte, m Msg) error {
	if err := proto.Unmarshal(payload, m); err != nil {
		return errors.Wrapf(errors.ErrMsg, "cannot decode %s payload: %s", m.Path(), err)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, m.Path())
	}
	return nil
}
