package orm

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both by value as well as bytes.Compare() on their encoding.
//
// Values are zero based: the first call to Next returns 0.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// Next returns the next unused value and advances the sequence.
func (s Sequence) Next(db quorum.KVStore) (uint64, error) {
	n, err := s.Count(db)
	if err != nil {
		return 0, err
	}
	if n == ^uint64(0) {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(n+1)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return n, nil
}

// NextVal works like Next but returns the value encoded as 8 bytes, ready to
// be used as a key.
func (s Sequence) NextVal(db quorum.KVStore) ([]byte, error) {
	n, err := s.Next(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// Count returns how many values were handed out so far. This method does not
// modify the sequence state.
func (s Sequence) Count(db quorum.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw)
}

// DecodeSequence converts the 8 byte big endian representation into an
// integer. A nil value decodes to 0.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence converts the value into its 8 byte big endian form. The
// ordering of encoded values is the same as the ordering of the integers.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
