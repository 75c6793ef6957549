package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/token"
)

// TokenView is the API representation of the ledger state.
type TokenView struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        uint32 `json:"decimals"`
	Supply          string `json:"supply"`
	SupplyFormatted string `json:"supply_formatted"`
	Cap             string `json:"cap"`
	Paused          bool   `json:"paused"`
}

func (api *API) tokenInfo(w http.ResponseWriter, r *http.Request) {
	s, err := api.token.Info()
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	supply, err := token.ParseAmount(s.Supply)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenView{
		Name:            s.Name,
		Symbol:          s.Symbol,
		Decimals:        s.Decimals,
		Supply:          s.Supply,
		SupplyFormatted: token.FormatUnits(supply, s.Decimals),
		Cap:             s.Cap,
		Paused:          s.Paused,
	})
}

// BalanceView is the balance of a single address.
type BalanceView struct {
	Address   quorum.Address `json:"address"`
	Balance   string         `json:"balance"`
	Formatted string         `json:"formatted"`
}

func (api *API) balance(w http.ResponseWriter, r *http.Request) {
	addr, err := quorum.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	bal, err := api.token.Balance(addr)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	human, err := api.token.FormatUnits(bal)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceView{
		Address:   addr,
		Balance:   bal.String(),
		Formatted: human,
	})
}
