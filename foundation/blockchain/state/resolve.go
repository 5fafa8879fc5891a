package state

import (
	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// Resolution describes what happened to a chain received from a peer.
type Resolution int

// Set of possible resolutions for a chain received from a peer.
const (
	ResolutionIgnored  Resolution = iota // Nothing to do, the peer is not ahead.
	ResolutionAppended                   // The peer tip was added to the chain.
	ResolutionQueryAll                   // The peer must be asked for its full chain.
	ResolutionReplaced                   // The chain was replaced by the peer chain.
	ResolutionRejected                   // The peer data failed validation.
)

var resolutionNames = map[Resolution]string{
	ResolutionIgnored:  "ignored",
	ResolutionAppended: "appended",
	ResolutionQueryAll: "query-all",
	ResolutionReplaced: "replaced",
	ResolutionRejected: "rejected",
}

// String implements the fmt.Stringer interface.
func (r Resolution) String() string {
	if name, exists := resolutionNames[r]; exists {
		return name
	}
	return "unknown"
}

// =============================================================================

// ResolvePeerChain reconciles the chain with a sequence of blocks received
// from a peer. A single block is the peer's latest block, more than one is
// the peer's full chain. Appends and replaces are shared with the network.
func (s *State) ResolvePeerChain(received []database.BlockData) Resolution {
	if len(received) == 0 {
		s.evHandler("state: ResolvePeerChain: received chain of size 0")
		return ResolutionIgnored
	}

	tip, err := database.ToBlock(received[len(received)-1])
	if err != nil {
		s.evHandler("state: ResolvePeerChain: tip structure not valid: ERROR: %s", err)
		return ResolutionIgnored
	}

	latest := s.RetrieveLatestBlock()
	if tip.Index <= latest.Index {
		s.evHandler("state: ResolvePeerChain: received chain is not ahead: have[%d] peer[%d]: do nothing", latest.Index, tip.Index)
		return ResolutionIgnored
	}

	s.evHandler("state: ResolvePeerChain: chain possibly behind: have[%d] peer[%d]", latest.Index, tip.Index)

	switch {
	case tip.PreviousHash == latest.Hash:
		if err := s.AppendBlock(tip); err != nil {
			return ResolutionRejected
		}
		s.broadcastLatest()
		return ResolutionAppended

	case len(received) == 1:
		s.evHandler("state: ResolvePeerChain: tip does not link, query the full chain from the peer")
		return ResolutionQueryAll
	}

	s.evHandler("state: ResolvePeerChain: received chain is longer than current chain")

	blocks, err := database.ToBlocks(received)
	if err != nil {
		s.evHandler("state: ResolvePeerChain: received chain structure not valid: ERROR: %s", err)
		return ResolutionRejected
	}

	if err := s.ReplaceChain(blocks); err != nil {
		return ResolutionRejected
	}

	return ResolutionReplaced
}
