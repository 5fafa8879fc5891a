package worker

import (
	"context"
	"fmt"

	"github.com/ardanlabs/chainsync/foundation/blockchain/peer"
	"github.com/ardanlabs/chainsync/foundation/blockchain/state"
)

// Connect dials the specified websocket address and serves the connection
// in the background once it is open.
func (w *Worker) Connect(ctx context.Context, host string) error {
	w.evHandler("worker: Connect: %s: dialing", host)

	c, _, err := w.dialer.DialContext(ctx, host, nil)
	if err != nil {
		w.evHandler("worker: Connect: %s: connection failed: ERROR: %s", host, err)
		return fmt.Errorf("dial %s: %w", host, err)
	}

	go w.Serve(peer.NewWebSocket(c))

	return nil
}

// Serve runs the protocol over an open channel until the channel is closed
// or fails. The connection is part of the peer set for that lifetime.
func (w *Worker) Serve(ch peer.Channel) {
	conn := peer.NewConn(ch)

	if !w.open(conn) {
		w.evHandler("worker: Serve: %s: rejected, shutting down", conn)
		conn.Close()
		return
	}
	defer w.wg.Done()
	defer w.close(conn)

	w.evHandler("worker: Serve: %s: connection open", conn)

	// Ask the new peer for its latest block to find out who is ahead.
	if data, err := NewQueryLatest().Encode(); err == nil {
		w.write(conn, data)
	}

	for {
		data, err := conn.Receive()
		if err != nil {
			w.evHandler("worker: Serve: %s: connection closed: %s", conn, err)
			return
		}

		w.handleMessage(conn, data)
	}
}

// =============================================================================

// open adds the connection to the peer set unless a shutdown is under way.
func (w *Worker) open(conn *peer.Conn) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shutdown {
		return false
	}

	w.wg.Add(1)
	w.peers.Add(conn)

	return true
}

// close removes the connection from the peer set and releases it.
func (w *Worker) close(conn *peer.Conn) {
	if w.peers.Remove(conn) {
		w.evHandler("worker: close: %s: removed from peers", conn)
	}
	conn.Close()
}

// write sends the data to the peer. A failed write closes the connection
// which terminates the goroutine serving it.
func (w *Worker) write(conn *peer.Conn, data []byte) {
	if err := conn.Send(data); err != nil {
		w.evHandler("worker: write: %s: ERROR: %s", conn, err)
		conn.Close()
	}
}

// handleMessage dispatches a message received from the peer.
func (w *Worker) handleMessage(conn *peer.Conn, data []byte) {
	msg, err := DecodeMessage(data)
	if err != nil {
		w.evHandler("worker: handleMessage: %s: could not parse received message: ERROR: %s", conn, err)
		return
	}

	w.evHandler("worker: handleMessage: %s: received %s", conn, msg.Type)

	switch msg.Type {
	case MessageQueryLatest:
		data, err := w.responseLatest()
		if err != nil {
			w.evHandler("worker: handleMessage: %s: ERROR: %s", conn, err)
			return
		}
		w.write(conn, data)

	case MessageQueryAll:
		data, err := w.responseChain()
		if err != nil {
			w.evHandler("worker: handleMessage: %s: ERROR: %s", conn, err)
			return
		}
		w.write(conn, data)

	case MessageResponseBlockchain:
		bds, err := msg.Blocks()
		if err != nil {
			w.evHandler("worker: handleMessage: %s: invalid blocks received: ERROR: %s", conn, err)
			return
		}

		res := w.state.ResolvePeerChain(bds)
		w.evHandler("worker: handleMessage: %s: resolution[%s]", conn, res)

		if res == state.ResolutionQueryAll {
			data, err := NewQueryAll().Encode()
			if err != nil {
				w.evHandler("worker: handleMessage: %s: ERROR: %s", conn, err)
				return
			}
			w.write(conn, data)
		}
	}
}
