// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for sharing blocks with the peer network.
type Worker interface {
	BroadcastLatest()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	EvHandler EventHandler
	Now       func() time.Time
}

// State manages the authoritative chain for the node.
type State struct {
	mu        sync.RWMutex
	chain     []database.Block
	evHandler EventHandler
	now       func() time.Time

	Worker Worker
}

// New constructs a new blockchain starting with the genesis block.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start sharing blocks with the network.

	return &State{
		chain:     []database.Block{database.Genesis()},
		evHandler: ev,
		now:       now,
	}
}

// broadcastLatest shares the latest block with every peer if a worker
// has been registered.
func (s *State) broadcastLatest() {
	if s.Worker == nil {
		return
	}

	s.Worker.BroadcastLatest()
}
