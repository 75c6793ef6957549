package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    uint32 `json:"code"`
	Error   string `json:"error"`
	Request string `json:"request,omitempty"`
}

// statusOf maps an error kind to the HTTP status code.
func statusOf(err error) int {
	switch {
	case multisig.ErrExecutorFailure.Is(err):
		return http.StatusBadGateway
	case errors.ErrUnauthorized.Is(err):
		return http.StatusForbidden
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case multisig.ErrDuplicateApproval.Is(err),
		multisig.ErrAlreadyExecuted.Is(err),
		errors.ErrDuplicate.Is(err):
		return http.StatusConflict
	case multisig.ErrInsufficientApprovals.Is(err):
		return http.StatusPreconditionFailed
	case errors.ErrInput.Is(err),
		errors.ErrEmpty.Is(err),
		errors.ErrMsg.Is(err),
		errors.ErrModel.Is(err),
		errors.ErrType.Is(err),
		errors.ErrAmount.Is(err),
		token.ErrCapExceeded.Is(err):
		return http.StatusBadRequest
	case errors.ErrState.Is(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code, msg := errors.Info(err, api.debug)

	logger := quorum.GetLogger(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}

	res := errorResponse{Code: code, Error: msg}
	res.Request, _ = quorum.GetRequestID(r.Context())
	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON request body into dest.
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode body: %s", err)
	}
	return nil
}

func (api *API) notFound(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, errors.Wrapf(errors.ErrNotFound, "no route for %s %s", r.Method, r.URL.Path))
}
