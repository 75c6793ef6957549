package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

// addressList collects a repeated address flag.
type addressList []quorum.Address

func (l *addressList) String() string {
	parts := make([]string, len(*l))
	for i, a := range *l {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func (l *addressList) Set(raw string) error {
	a, err := quorum.ParseAddress(raw)
	if err != nil {
		return err
	}
	*l = append(*l, a)
	return nil
}

// InitCmd writes the default configuration and a genesis file built from
// the command line into the home directory. Existing files are only
// replaced when -force is given.
func InitCmd(logger log.Logger, home string, args []string) error {
	var (
		owners                         addressList
		holder                         addressList
		threshold                      uint
		name, symbol, supply, capacity string
		force                          bool
	)
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	fl.Var(&owners, "owner", "owner address, hex or bech32 (repeat for each owner)")
	fl.UintVar(&threshold, "threshold", 0, "number of approvals required, defaults to all owners")
	fl.Var(&holder, "holder", "address credited with the initial supply, defaults to the first owner")
	fl.StringVar(&name, "name", "d42", "token name")
	fl.StringVar(&symbol, "symbol", "D42", "token symbol")
	fl.StringVar(&supply, "supply", "1000", "initial supply in whole tokens")
	fl.StringVar(&capacity, "cap", "0", "maximum supply in whole tokens, 0 for no cap")
	fl.BoolVar(&force, "force", false, "overwrite existing files")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if len(owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "at least one -owner is required")
	}
	if threshold == 0 {
		threshold = uint(len(owners))
	}
	if len(holder) == 0 {
		holder = owners[:1]
	}
	units, err := token.ParseUnits(supply, token.DefaultDecimals)
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	capUnits, err := token.ParseUnits(capacity, token.DefaultDecimals)
	if err != nil {
		return errors.Wrap(err, "cap")
	}

	g := Genesis{
		Owners:    owners,
		Threshold: uint32(threshold),
		Token: token.Genesis{
			Name:          name,
			Symbol:        symbol,
			Decimals:      token.DefaultDecimals,
			Holder:        holder[0],
			InitialSupply: units.String(),
			Cap:           capUnits.String(),
		},
	}
	// Catch configuration problems now rather than on first start.
	if _, err := g.Registry(); err != nil {
		return err
	}

	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(err, "create home")
	}
	for _, name := range []string{configFile, genesisFile} {
		path := filepath.Join(home, name)
		if _, err := os.Stat(path); err == nil && !force {
			return errors.Wrapf(errors.ErrDuplicate, "%s exists, use -force to overwrite", path)
		}
	}

	if err := writeConfig(home, DefaultConfig()); err != nil {
		return err
	}
	logger.Info("Generated config file", "path", filepath.Join(home, configFile))
	if err := writeGenesis(home, g); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	logger.Info("Generated genesis file", "path", filepath.Join(home, genesisFile),
		"owners", len(owners), "threshold", threshold)
	return nil
}
