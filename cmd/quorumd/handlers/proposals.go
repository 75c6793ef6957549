package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/token"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ProposalView is the API representation of a proposal.
type ProposalView struct {
	ID            uint64           `json:"id"`
	Target        string           `json:"target"`
	Payload       []byte           `json:"payload"`
	Proposer      quorum.Address   `json:"proposer"`
	Approvals     []quorum.Address `json:"approvals"`
	ApprovalCount uint32           `json:"approval_count"`
	Threshold     uint32           `json:"threshold"`
	Executable    bool             `json:"executable"`
	Executed      bool             `json:"executed"`
	CreatedAt     int64            `json:"created_at"`
	ExecutedAt    int64            `json:"executed_at,omitempty"`
	ExecutedBy    quorum.Address   `json:"executed_by,omitempty"`
	Result        []byte           `json:"result,omitempty"`
}

func (api *API) view(p *multisig.Proposal) ProposalView {
	threshold := api.coord.Registry().Threshold()
	return ProposalView{
		ID:            p.ID,
		Target:        p.Target,
		Payload:       p.Payload,
		Proposer:      p.Proposer,
		Approvals:     p.Approvers(),
		ApprovalCount: p.ApprovalCount(),
		Threshold:     threshold,
		Executable:    p.Executable(threshold),
		Executed:      p.Executed,
		CreatedAt:     p.CreatedAt,
		ExecutedAt:    p.ExecutedAt,
		ExecutedBy:    p.ExecutedBy,
		Result:        p.Result,
	}
}

// SubmitRequest is the body of POST /proposals. The payload is given
// either raw (base64 in JSON) or, for ledger actions, as a JSON message that
// is encoded by the server.
type SubmitRequest struct {
	Target   string          `json:"target"`
	Payload  []byte          `json:"payload,omitempty"`
	Msg      json.RawMessage `json:"msg,omitempty"`
	Proposer quorum.Address  `json:"proposer"`
}

func (req SubmitRequest) payload() ([]byte, error) {
	if len(req.Msg) == 0 {
		return req.Payload, nil
	}
	if len(req.Payload) != 0 {
		return nil, errors.Wrap(errors.ErrInput, "payload and msg are exclusive")
	}
	msg, ok := token.NewMsg(req.Target)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "no message declared for %q, use payload", req.Target)
	}
	if err := json.Unmarshal(req.Msg, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode msg: %s", err)
	}
	return token.Encode(msg)
}

func (api *API) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := decodeBody(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	payload, err := req.payload()
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	id, err := api.coord.Submit(r.Context(), req.Target, payload, req.Proposer)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	p, err := api.coord.Get(id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.view(p))
}

func (api *API) listProposals(w http.ResponseWriter, r *http.Request) {
	offset, err := queryUint(r, "offset", 0)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	limit, err := queryUint(r, "limit", defaultPageSize)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	list, err := api.coord.Proposals(offset, limit)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	count, err := api.coord.Count()
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	views := make([]ProposalView, len(list))
	for i, p := range list {
		views[i] = api.view(p)
	}
	writeJSON(w, http.StatusOK, struct {
		Total     uint64         `json:"total"`
		Proposals []ProposalView `json:"proposals"`
	}{
		Total:     count,
		Proposals: views,
	})
}

func (api *API) getProposal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	p, err := api.coord.Get(id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.view(p))
}

// ApproveRequest is the body of POST /proposals/{id}/approvals.
type ApproveRequest struct {
	Approver quorum.Address `json:"approver"`
}

func (api *API) approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	var req ApproveRequest
	if err := decodeBody(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	if err := api.coord.Approve(r.Context(), id, req.Approver); err != nil {
		api.writeError(w, r, err)
		return
	}
	p, err := api.coord.Get(id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.view(p))
}

func (api *API) hasApproved(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	owner, err := quorum.ParseAddress(mux.Vars(r)["owner"])
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	ok, err := api.coord.HasApproved(id, owner)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Approved bool `json:"approved"`
	}{ok})
}

// ExecuteRequest is the body of POST /proposals/{id}/execute.
type ExecuteRequest struct {
	Caller quorum.Address `json:"caller"`
}

func (api *API) execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	var req ExecuteRequest
	if err := decodeBody(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	p, err := api.coord.Execute(r.Context(), id, req.Caller)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.view(p))
}

func pathID(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid proposal id %q", raw)
	}
	return id, nil
}

func queryUint(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid %s %q", name, raw)
	}
	return n, nil
}
