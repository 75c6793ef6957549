package token

import (
	"context"
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/x/multisig"
)

// RegisterRoutes registers handlers for all state changing actions of the
// ledger. Nothing else can modify it.
func RegisterRoutes(r *app.Router, c *Controller) {
	r.Handle(PathMint, MintHandler{ctrl: c})
	r.Handle(PathTransfer, TransferHandler{ctrl: c})
	r.Handle(PathPause, PauseHandler{ctrl: c, paused: true})
	r.Handle(PathUnpause, PauseHandler{ctrl: c, paused: false})
	r.Handle(PathSetCap, SetCapHandler{ctrl: c})
}

// MintHandler applies MintMsg.
type MintHandler struct {
	ctrl *Controller
}

var _ app.Handler = MintHandler{}

func (h MintHandler) Apply(ctx context.Context, payload []byte) (multisig.Effect, error) {
	var msg MintMsg
	if err := decode(payload, &msg); err != nil {
		return multisig.Effect{}, err
	}
	amount, _ := parsePositive(msg.Amount)
	supply, err := h.ctrl.mint(msg.To, amount)
	if err != nil {
		return multisig.Effect{}, err
	}
	quorum.GetLogger(ctx).Info("minted", "to", msg.To, "amount", msg.Amount, "supply", supply)
	return multisig.Effect{
		Data: []byte(formatAmount(supply)),
		Log:  fmt.Sprintf("minted %s to %s", msg.Amount, msg.To),
	}, nil
}

// TransferHandler applies TransferMsg.
type TransferHandler struct {
	ctrl *Controller
}

var _ app.Handler = TransferHandler{}

func (h TransferHandler) Apply(ctx context.Context, payload []byte) (multisig.Effect, error) {
	var msg TransferMsg
	if err := decode(payload, &msg); err != nil {
		return multisig.Effect{}, err
	}
	amount, _ := parsePositive(msg.Amount)
	if err := h.ctrl.transfer(msg.From, msg.To, amount); err != nil {
		return multisig.Effect{}, err
	}
	quorum.GetLogger(ctx).Info("transferred", "from", msg.From, "to", msg.To, "amount", msg.Amount)
	return multisig.Effect{
		Log: fmt.Sprintf("transferred %s from %s to %s", msg.Amount, msg.From, msg.To),
	}, nil
}

// PauseHandler applies PauseMsg or UnpauseMsg.
type PauseHandler struct {
	ctrl   *Controller
	paused bool
}

var _ app.Handler = PauseHandler{}

func (h PauseHandler) Apply(ctx context.Context, payload []byte) (multisig.Effect, error) {
	var msg Msg = &UnpauseMsg{}
	if h.paused {
		msg = &PauseMsg{}
	}
	if err := decode(payload, msg); err != nil {
		return multisig.Effect{}, err
	}
	if err := h.ctrl.setPaused(h.paused); err != nil {
		return multisig.Effect{}, err
	}
	quorum.GetLogger(ctx).Info("pause changed", "paused", h.paused)
	return multisig.Effect{Log: fmt.Sprintf("paused: %t", h.paused)}, nil
}

// SetCapHandler applies SetCapMsg.
type SetCapHandler struct {
	ctrl *Controller
}

var _ app.Handler = SetCapHandler{}

func (h SetCapHandler) Apply(ctx context.Context, payload []byte) (multisig.Effect, error) {
	var msg SetCapMsg
	if err := decode(payload, &msg); err != nil {
		return multisig.Effect{}, err
	}
	capacity, _ := ParseAmount(msg.Cap)
	if err := h.ctrl.setCap(capacity); err != nil {
		return multisig.Effect{}, err
	}
	quorum.GetLogger(ctx).Info("cap changed", "cap", capacity)
	return multisig.Effect{
		Data: []byte(formatAmount(capacity)),
		Log:  fmt.Sprintf("cap set to %s", formatAmount(capacity)),
	}, nil
}
