package handlers

import (
	"net/http"

	"github.com/iov-one/quorum"
)

// InfoView describes the coordinator.
type InfoView struct {
	Version   string           `json:"version"`
	Owners    []quorum.Address `json:"owners"`
	Threshold uint32           `json:"threshold"`
	Proposals uint64           `json:"proposals"`
}

func (api *API) info(w http.ResponseWriter, r *http.Request) {
	count, err := api.coord.Count()
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	reg := api.coord.Registry()
	writeJSON(w, http.StatusOK, InfoView{
		Version:   quorum.Version(),
		Owners:    reg.Owners(),
		Threshold: reg.Threshold(),
		Proposals: count,
	})
}
