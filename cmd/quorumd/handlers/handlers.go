/*
Package handlers implements the HTTP API of quorumd.

All request and response bodies are JSON. Addresses are accepted in hex or
bech32 form and returned in hex. Every request is assigned an identifier,
taken from the X-Request-Id header when present, that is returned in the
same header and attached to all log lines of that request.
*/
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// maxBodySize limits request bodies.
const maxBodySize = 1 << 20

// API serves the coordinator and the ledger it controls.
type API struct {
	coord  *multisig.Coordinator
	token  *token.Controller
	logger log.Logger
	debug  bool
}

// New returns the HTTP handler of the API. In debug mode error responses
// carry internal details and stack traces.
func New(coord *multisig.Coordinator, tok *token.Controller, logger log.Logger, debug bool) http.Handler {
	api := &API{
		coord:  coord,
		token:  tok,
		logger: logger.With("module", "http"),
		debug:  debug,
	}

	r := mux.NewRouter()
	r.Use(api.withRequestID)

	r.HandleFunc("/info", api.info).Methods(http.MethodGet)

	r.HandleFunc("/proposals", api.submit).Methods(http.MethodPost)
	r.HandleFunc("/proposals", api.listProposals).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}", api.getProposal).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}/approvals", api.approve).Methods(http.MethodPost)
	r.HandleFunc("/proposals/{id:[0-9]+}/approvals/{owner}", api.hasApproved).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}/execute", api.execute).Methods(http.MethodPost)

	r.HandleFunc("/token", api.tokenInfo).Methods(http.MethodGet)
	r.HandleFunc("/token/balances/{address}", api.balance).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(api.notFound)
	return r
}
