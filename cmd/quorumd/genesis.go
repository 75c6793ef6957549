package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
)

// Genesis declares the owners of the coordinator and the ledger they
// control. It is loaded once, the first time the daemon starts.
type Genesis struct {
	Owners    []quorum.Address `json:"owners"`
	Threshold uint32           `json:"threshold"`
	Token     token.Genesis    `json:"token"`
}

// Registry builds the owner registry declared by the genesis.
func (g Genesis) Registry() (*multisig.Registry, error) {
	return multisig.NewRegistry(g.Owners, g.Threshold)
}

func loadGenesis(home string) (*Genesis, error) {
	path := filepath.Join(home, genesisFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "genesis %s: %s", path, err)
	}
	var g Genesis
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	return &g, nil
}

func writeGenesis(home string, g Genesis) error {
	raw, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode genesis")
	}
	return os.WriteFile(filepath.Join(home, genesisFile), raw, 0600)
}
