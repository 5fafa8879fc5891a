package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Set of errors returned when a block or chain fails validation.
var (
	ErrInvalidStructure    = errors.New("invalid block structure")
	ErrInvalidIndex        = errors.New("invalid block index")
	ErrInvalidPreviousHash = errors.New("invalid previous hash")
	ErrInvalidHash         = errors.New("invalid block hash")
	ErrInvalidGenesis      = errors.New("invalid genesis block")
	ErrEmptyChain          = errors.New("empty chain")
)

// =============================================================================

// ValidateStructure checks the field types of a block received over the
// wire. It does not check linkage or the hash.
func ValidateStructure(bd BlockData) error {
	index, ok := asIndex(bd.Index)
	if !ok {
		return fmt.Errorf("%w: index %v is not a non-negative integer", ErrInvalidStructure, bd.Index)
	}

	if _, ok := bd.Hash.(string); !ok {
		return fmt.Errorf("%w: hash %v is not a string", ErrInvalidStructure, bd.Hash)
	}

	// Only a genesis block is allowed to go without a previous hash.
	switch bd.PreviousHash.(type) {
	case string:
	case nil:
		if index != 0 {
			return fmt.Errorf("%w: previous hash missing for blk[%d]", ErrInvalidStructure, index)
		}
	default:
		return fmt.Errorf("%w: previous hash %v is not a string", ErrInvalidStructure, bd.PreviousHash)
	}

	if _, ok := asTimestamp(bd.Timestamp); !ok {
		return fmt.Errorf("%w: timestamp %v is not a number", ErrInvalidStructure, bd.Timestamp)
	}

	if _, ok := bd.Data.(string); !ok {
		return fmt.Errorf("%w: data %v is not a string", ErrInvalidStructure, bd.Data)
	}

	return nil
}

// ValidateSuccessor checks that the candidate block can be placed directly
// after the previous block.
func ValidateSuccessor(candidate Block, previous Block) error {
	if candidate.Index != previous.Index+1 {
		return fmt.Errorf("%w: got %d, exp %d", ErrInvalidIndex, candidate.Index, previous.Index+1)
	}

	if candidate.PreviousHash != previous.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrInvalidPreviousHash, candidate.PreviousHash, previous.Hash)
	}

	if hash := candidate.CalculateHash(); hash != candidate.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrInvalidHash, candidate.Hash, hash)
	}

	return nil
}

// ValidateChain checks the chain starts with the canonical genesis block and
// that every block is a valid successor of the one before it.
func ValidateChain(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	if blocks[0] != Genesis() {
		return fmt.Errorf("%w: got %s", ErrInvalidGenesis, blocks[0])
	}

	for i := 1; i < len(blocks); i++ {
		if err := ValidateSuccessor(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("blk[%d]: %w", i, err)
		}
	}

	return nil
}

// IsValidStructure is the predicate form of ValidateStructure.
func IsValidStructure(bd BlockData) bool {
	return ValidateStructure(bd) == nil
}

// IsValidSuccessor is the predicate form of ValidateSuccessor.
func IsValidSuccessor(candidate Block, previous Block) bool {
	return ValidateSuccessor(candidate, previous) == nil
}

// IsValidChain is the predicate form of ValidateChain.
func IsValidChain(blocks []Block) bool {
	return ValidateChain(blocks) == nil
}

// =============================================================================

// asIndex extracts a non-negative integer from a decoded JSON value.
func asIndex(v any) (uint64, bool) {
	var f float64

	switch n := v.(type) {
	case json.Number:
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return u, true
		}
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case float64:
		f = n
	default:
		return 0, false
	}

	if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, false
	}

	return uint64(f), true
}

// asTimestamp extracts a number from a decoded JSON value.
func asTimestamp(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	}

	return 0, false
}
