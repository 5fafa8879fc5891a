// Package database provides the block type for the ledger along with the
// hashing and validation rules that every block and chain must satisfy.
package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Block represents one entry in the ledger. A block is never changed once
// it has been constructed.
type Block struct {
	Index        uint64  // Position of the block in the chain, genesis is 0.
	Hash         string  // Hash of the other four fields.
	PreviousHash string  // Hash of the parent block, empty for genesis.
	Timestamp    float64 // Seconds since epoch when the block was minted.
	Data         string  // Opaque payload carried by the block.
}

// NewBlock constructs the block that follows the specified previous block.
func NewBlock(previous Block, timestamp float64, data string) Block {
	index := previous.Index + 1

	return Block{
		Index:        index,
		Hash:         Hash(index, previous.Hash, timestamp, data),
		PreviousHash: previous.Hash,
		Timestamp:    timestamp,
		Data:         data,
	}
}

// CalculateHash recomputes the hash for the block from its fields.
func (b Block) CalculateHash() string {
	return Hash(b.Index, b.PreviousHash, b.Timestamp, b.Data)
}

// IsGenesis reports whether the block claims to be the first in a chain.
func (b Block) IsGenesis() bool {
	return b.Index == 0
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("blk[%d]: hash[%s]", b.Index, b.Hash)
}

// MarshalJSON implements the json.Marshaler interface using the wire form.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(NewBlockData(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface. The decoded block
// must pass the structural checks.
func (b *Block) UnmarshalJSON(data []byte) error {
	var bd BlockData
	if err := bd.UnmarshalJSON(data); err != nil {
		return err
	}

	block, err := ToBlock(bd)
	if err != nil {
		return err
	}

	*b = block
	return nil
}

// =============================================================================

// BlockData represents a block as it arrives over the wire. The fields are
// left untyped so the structure of a block received from a peer can be
// checked before it is trusted.
type BlockData struct {
	Index        any `json:"index"`
	Hash         any `json:"hash"`
	PreviousHash any `json:"previousHash"`
	Timestamp    any `json:"timestamp"`
	Data         any `json:"data"`
}

// NewBlockData constructs the wire form of the specified block.
func NewBlockData(block Block) BlockData {
	var prevHash any
	if !block.IsGenesis() {
		prevHash = block.PreviousHash
	}

	return BlockData{
		Index:        json.Number(strconv.FormatUint(block.Index, 10)),
		Hash:         block.Hash,
		PreviousHash: prevHash,
		Timestamp:    json.Number(formatTimestamp(block.Timestamp)),
		Data:         block.Data,
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface. Numbers are kept
// as json.Number so integer indexes survive without float conversion.
func (bd *BlockData) UnmarshalJSON(data []byte) error {
	type wire BlockData

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var w wire
	if err := dec.Decode(&w); err != nil {
		return err
	}

	*bd = BlockData(w)
	return nil
}

// ToBlock converts the wire form into a Block once it passes the structural
// checks.
func ToBlock(bd BlockData) (Block, error) {
	if err := ValidateStructure(bd); err != nil {
		return Block{}, err
	}

	// The type assertions can't fail after the structural validation.
	index, _ := asIndex(bd.Index)
	timestamp, _ := asTimestamp(bd.Timestamp)
	prevHash, _ := bd.PreviousHash.(string)

	block := Block{
		Index:        index,
		Hash:         bd.Hash.(string),
		PreviousHash: prevHash,
		Timestamp:    timestamp,
		Data:         bd.Data.(string),
	}

	return block, nil
}

// ToBlocks converts a sequence of wire blocks, failing on the first block
// with an invalid structure. A sequence starting at index 0 must start with a
// null previous hash, the only form the genesis block takes on the wire.
func ToBlocks(bds []BlockData) ([]Block, error) {
	blocks := make([]Block, len(bds))
	for i, bd := range bds {
		block, err := ToBlock(bd)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		if i == 0 && block.Index == 0 && bd.PreviousHash != nil {
			return nil, fmt.Errorf("block 0: %w: previous hash %q is not null", ErrInvalidGenesis, bd.PreviousHash)
		}

		blocks[i] = block
	}

	return blocks, nil
}

// NewBlocksData constructs the wire form for a sequence of blocks.
func NewBlocksData(blocks []Block) []BlockData {
	bds := make([]BlockData, len(blocks))
	for i, block := range blocks {
		bds[i] = NewBlockData(block)
	}

	return bds
}
