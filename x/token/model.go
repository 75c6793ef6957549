package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	// StateBucketName holds the single ledger State.
	StateBucketName = "token"
	// AccountBucketName holds balances keyed by address.
	AccountBucketName = "account"

	// DefaultDecimals is the number of decimals of the d42 token.
	DefaultDecimals = 18

	maxDecimals = 36
)

var stateKey = []byte("state")

// State is the ledger configuration and counters. See codec.proto.
type State struct {
	Name     string `protobuf:"bytes,1,opt,name=name,proto3" json:"name"`
	Symbol   string `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol"`
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals"`
	Supply   string `protobuf:"bytes,4,opt,name=supply,proto3" json:"supply"`
	Cap      string `protobuf:"bytes,5,opt,name=cap,proto3" json:"cap"`
	Paused   bool   `protobuf:"varint,6,opt,name=paused,proto3" json:"paused"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Reset()         { *s = State{} }
func (s *State) String() string { return proto.CompactTextString(s) }
func (*State) ProtoMessage()    {}

func (s *State) Validate() error {
	var errs error
	if s.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if s.Symbol == "" {
		errs = errors.AppendField(errs, "Symbol", errors.ErrEmpty)
	}
	if s.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(errors.ErrInput, "at most %d", maxDecimals))
	}
	supply, err := ParseAmount(s.Supply)
	errs = errors.AppendField(errs, "Supply", err)
	capacity, err := ParseAmount(s.Cap)
	errs = errors.AppendField(errs, "Cap", err)
	if errs == nil && capacity.IsPositive() && supply.GreaterThan(capacity) {
		errs = errors.AppendField(errs, "Supply", errors.Wrap(ErrCapExceeded, "supply above cap"))
	}
	return errs
}

// Account holds the balance of a single address.
type Account struct {
	Balance string `protobuf:"bytes,1,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Reset()         { *a = Account{} }
func (a *Account) String() string { return proto.CompactTextString(a) }
func (*Account) ProtoMessage()    {}

func (a *Account) Validate() error {
	_, err := ParseAmount(a.Balance)
	return errors.Field("Balance", err, "account")
}
