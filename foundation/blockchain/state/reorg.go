package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// ErrChainNotLonger is returned when a candidate chain is valid but does not
// have more blocks than the current chain.
var ErrChainNotLonger = errors.New("chain is not longer than the current chain")

// ReplaceChain swaps the current chain for the candidate chain when the
// candidate is valid and strictly longer. On ties the current chain is kept.
// A successful replace is shared with the network.
func (s *State) ReplaceChain(blocks []database.Block) error {
	if err := s.replaceChain(blocks); err != nil {
		return err
	}

	s.broadcastLatest()

	return nil
}

// replaceChain performs the validation and swap under the lock.
func (s *State) replaceChain(blocks []database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: ReplaceChain: validate: length[%d]", len(blocks))

	if err := database.ValidateChain(blocks); err != nil {
		s.evHandler("state: ReplaceChain: received chain invalid: ERROR: %s", err)
		return fmt.Errorf("validate chain: %w", err)
	}

	if len(blocks) <= len(s.chain) {
		s.evHandler("state: ReplaceChain: received chain not longer: got[%d] have[%d]", len(blocks), len(s.chain))
		return fmt.Errorf("%w: got %d, have %d", ErrChainNotLonger, len(blocks), len(s.chain))
	}

	chain := make([]database.Block, len(blocks))
	copy(chain, blocks)
	s.chain = chain

	s.evHandler("state: ReplaceChain: replaced current chain: length[%d]", len(s.chain))

	return nil
}
