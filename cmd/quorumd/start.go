package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StartCmd loads the configuration and the genesis of given home directory,
// opens the stores and serves the HTTP API until the process is
// interrupted.
func StartCmd(logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return errors.Wrap(err, "config")
	}

	fl := flag.NewFlagSet("start", flag.ContinueOnError)
	fl.StringVar(&cfg.Bind, "bind", cfg.Bind, "address server listens on")
	fl.BoolVar(&cfg.Debug, "debug", cfg.Debug, "call stack returned on error")
	fl.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "debug, info, error or none")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opt, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, opt)

	g, err := loadGenesis(home)
	if err != nil {
		return err
	}

	node, err := OpenNode(logger, filepath.Join(home, dataDir), g, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			logger.Error("cannot close stores", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting HTTP server", "bind", cfg.Bind)
	return node.Serve(ctx, cfg.Bind, cfg.ShutdownTimeout)
}
