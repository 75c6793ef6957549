package weavetest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/quorum"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. It fails the test if the value cannot be decoded.
func ParseAddress(t testing.TB, encodedAddress string) quorum.Address {
	t.Helper()

	addr, err := quorum.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceAddress returns a deterministic address for given number. The
// same number always produces the same address.
func SequenceAddress(n uint64) quorum.Address {
	seed := make([]byte, 8)
	binary.BigEndian.PutUint64(seed, n)
	return quorum.NewAddress(append([]byte("weavetest/"), seed...))
}

// Owners returns n distinct deterministic addresses.
func Owners(n int) []quorum.Address {
	res := make([]quorum.Address, n)
	for i := range res {
		res[i] = SequenceAddress(uint64(i) + 1)
	}
	return res
}
