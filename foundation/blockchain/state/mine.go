package state

import (
	"fmt"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// MineNextBlock builds the block that follows the latest block using the
// current time. The block is not added to the chain.
func (s *State) MineNextBlock(data string) database.Block {
	now := s.now()
	timestamp := float64(now.UnixMilli()) / 1000

	block := database.NewBlock(s.RetrieveLatestBlock(), timestamp, data)

	s.evHandler("state: MineNextBlock: mined: %s", block)

	return block
}

// GenerateNextBlock mines a new block with the specified data, adds it to
// the chain and shares it with the network.
func (s *State) GenerateNextBlock(data string) (database.Block, error) {
	block := s.MineNextBlock(data)

	if err := s.AppendBlock(block); err != nil {
		return database.Block{}, fmt.Errorf("append mined block: %w", err)
	}

	s.broadcastLatest()

	return block, nil
}
