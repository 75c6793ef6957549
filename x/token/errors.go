package token

import (
	"github.com/iov-one/quorum/errors"
)

// ErrCapExceeded is returned when minting would raise the total supply
// above the cap.
var ErrCapExceeded = errors.Register(1040, "supply cap exceeded")
