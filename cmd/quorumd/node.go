package main

import (
	"context"
	"net/http"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/cmd/quorumd/handlers"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
	"github.com/sourcegraph/conc"
	"github.com/tendermint/tendermint/libs/log"
)

// Node wires the coordinator, the ledger it controls and the HTTP API.
type Node struct {
	Coordinator *multisig.Coordinator
	Token       *token.Controller
	Handler     http.Handler

	logger  log.Logger
	closers []func() error
}

// OpenNode opens the durable stores under dir and builds a node on top of
// them. The ledger is initialized from the genesis on first start.
func OpenNode(logger log.Logger, dir string, g *Genesis, debug bool) (*Node, error) {
	proposals, err := iavl.NewCommitStore(dir, "coordinator")
	if err != nil {
		return nil, errors.Wrap(err, "open coordinator store")
	}
	ledger, err := iavl.NewCommitStore(dir, "token")
	if err != nil {
		proposals.Close()
		return nil, errors.Wrap(err, "open token store")
	}

	n, err := NewNode(logger, proposals, ledger, g, debug)
	if err != nil {
		proposals.Close()
		ledger.Close()
		return nil, err
	}
	n.closers = append(n.closers, proposals.Close, ledger.Close)
	return n, nil
}

// NewNode builds a node on top of given stores.
func NewNode(logger log.Logger, proposals, ledger quorum.CacheableKVStore, g *Genesis, debug bool) (*Node, error) {
	reg, err := g.Registry()
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}

	ctrl := token.NewController(ledger, logger)
	switch ok, err := ctrl.Initialized(); {
	case err != nil:
		return nil, errors.Wrap(err, "token state")
	case !ok:
		if err := ctrl.Init(g.Token); err != nil {
			return nil, errors.Wrap(err, "token genesis")
		}
	}

	router := app.NewRouter()
	token.RegisterRoutes(router, ctrl)

	coord := multisig.NewCoordinator(proposals, reg, router, multisig.WithLogger(logger))
	return &Node{
		Coordinator: coord,
		Token:       ctrl,
		Handler:     handlers.New(coord, ctrl, logger, debug),
		logger:      logger,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// waiting at most timeout for requests in flight.
func (n *Node) Serve(ctx context.Context, bind string, timeout time.Duration) error {
	srv := &http.Server{
		Addr:              bind,
		Handler:           n.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	failed := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	})

	var err error
	select {
	case <-ctx.Done():
		n.logger.Info("Shutting down HTTP server")
	case err = <-failed:
		err = errors.Wrap(err, "http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = errors.Wrap(serr, "shutdown")
	}
	wg.Wait()
	return err
}

// Close releases the stores.
func (n *Node) Close() error {
	var errs error
	for _, c := range n.closers {
		errs = errors.Append(errs, c())
	}
	return errs
}
