package state

import (
	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// RetrieveChain returns a copy of the current chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.chain))
	copy(blocks, s.chain)

	return blocks
}

// RetrieveLatestBlock returns a copy the current latest block. The chain
// always holds at least the genesis block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1]
}

// RetrieveLength returns the number of blocks in the chain.
func (s *State) RetrieveLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chain)
}
