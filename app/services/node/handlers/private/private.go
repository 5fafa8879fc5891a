package private

import (
	"context"
	"net/http"

	"github.com/ardanlabs/chainsync/foundation/blockchain/peer"
	"github.com/ardanlabs/chainsync/foundation/blockchain/state"
	"github.com/ardanlabs/chainsync/foundation/blockchain/worker"
	"github.com/ardanlabs/chainsync/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Worker *worker.Worker
	WS     websocket.Upgrader
}

// Peer upgrades the request to a websocket and runs the sync protocol over it
// until the remote node goes away.
func (h Handlers) Peer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// The upgrader has already replied to the client on failure.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Infow("peer upgrade", "traceid", v.TraceID, "remoteaddr", r.RemoteAddr, "ERROR", err)
		return nil
	}

	h.Log.Infow("peer connected", "traceid", v.TraceID, "remoteaddr", c.RemoteAddr().String())

	h.Worker.Serve(peer.NewWebSocket(c))

	return nil
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	status := struct {
		Length     int      `json:"length"`
		LatestHash string   `json:"latest_hash"`
		Peers      []string `json:"peers"`
	}{
		Length:     h.State.RetrieveLength(),
		LatestHash: latest.Hash,
		Peers:      h.Worker.RetrievePeers(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}
