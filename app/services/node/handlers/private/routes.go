// Package private maintains the group of handlers for node to node access.
package private

import (
	"net/http"

	"github.com/ardanlabs/chainsync/foundation/blockchain/state"
	"github.com/ardanlabs/chainsync/foundation/blockchain/worker"
	"github.com/ardanlabs/chainsync/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Worker *worker.Worker
}

// Routes binds all the private routes.
func Routes(app *web.App, cfg Config) {
	prv := Handlers{
		Log:    cfg.Log,
		State:  cfg.State,
		Worker: cfg.Worker,
		WS: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	const version = "v1"

	// Peers open a websocket on the root path of the p2p listener.
	app.Handle(http.MethodGet, "", "/", prv.Peer)
	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
}
