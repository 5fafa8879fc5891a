// Package worker implements the peer protocol that keeps the blockchain in
// sync with the rest of the network.
package worker

import (
	"sync"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
	"github.com/ardanlabs/chainsync/foundation/blockchain/peer"
	"github.com/ardanlabs/chainsync/foundation/blockchain/state"
	"github.com/gorilla/websocket"
)

// Worker manages the peer connections for the blockchain.
type Worker struct {
	state     *state.State
	peers     *peer.PeerSet
	dialer    *websocket.Dialer
	evHandler state.EventHandler

	mu       sync.Mutex
	wg       sync.WaitGroup
	shutdown bool
}

// Run creates a worker and registers the worker with the state package so
// accepted blocks are shared with every open connection.
func Run(st *state.State, peers *peer.PeerSet, evHandler state.EventHandler) *Worker {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	w := Worker{
		state:     st,
		peers:     peers,
		dialer:    websocket.DefaultDialer,
		evHandler: ev,
	}

	// Register this worker with the state package.
	st.Worker = &w

	return &w
}

// Shutdown closes every open connection and waits for the goroutines
// serving them to terminate.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.mu.Lock()
	w.shutdown = true
	w.mu.Unlock()

	w.evHandler("worker: shutdown: close peer connections")
	for _, conn := range w.peers.Copy() {
		conn.Close()
	}

	w.evHandler("worker: shutdown: terminate goroutines")
	w.wg.Wait()
}

// =============================================================================
// These methods implement the state.Worker interface.

// BroadcastLatest sends the latest block to every open connection.
func (w *Worker) BroadcastLatest() {
	w.evHandler("worker: BroadcastLatest: started")
	defer w.evHandler("worker: BroadcastLatest: completed")

	data, err := w.responseLatest()
	if err != nil {
		w.evHandler("worker: BroadcastLatest: ERROR: %s", err)
		return
	}

	for _, conn := range w.peers.Copy() {
		w.write(conn, data)
	}
}

// =============================================================================

// RetrievePeers returns the remote address of every open connection.
func (w *Worker) RetrievePeers() []string {
	return w.peers.Hosts()
}

// responseLatest encodes a message carrying only the latest block.
func (w *Worker) responseLatest() ([]byte, error) {
	msg, err := NewResponseBlockchain([]database.Block{w.state.RetrieveLatestBlock()})
	if err != nil {
		return nil, err
	}

	return msg.Encode()
}

// responseChain encodes a message carrying the full chain.
func (w *Worker) responseChain() ([]byte, error) {
	msg, err := NewResponseBlockchain(w.state.RetrieveChain())
	if err != nil {
		return nil, err
	}

	return msg.Encode()
}
