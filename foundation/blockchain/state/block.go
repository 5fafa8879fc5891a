package state

import (
	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// AppendBlock takes a block, validates it against the latest block and if
// that passes, adds the block to the chain. This is the only way a single
// block enters the chain.
func (s *State) AppendBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: AppendBlock: validate: %s", block)

	latest := s.chain[len(s.chain)-1]
	if err := database.ValidateSuccessor(block, latest); err != nil {
		s.evHandler("state: AppendBlock: rejected: %s: ERROR: %s", block, err)
		return err
	}

	s.chain = append(s.chain, block)

	s.evHandler("state: AppendBlock: accepted: %s: length[%d]", block, len(s.chain))

	return nil
}
