package public

import (
	"github.com/ardanlabs/chainsync/business/sys/validate"
)

// mineRequest is the data required to mine a new block.
type mineRequest struct {
	Data string `json:"data"`
}

// addPeerRequest is the data required to connect to a new peer.
type addPeerRequest struct {
	Peer string `json:"peer" validate:"required,url"`
}

// Validate checks the data in the model is considered clean.
func (apr addPeerRequest) Validate() error {
	return validate.Check(apr)
}
