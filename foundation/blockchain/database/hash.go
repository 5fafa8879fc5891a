package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Hash returns the hex encoded SHA-256 digest of the block fields. Each field
// is written with its length as a prefix so two different sets of fields can
// never produce the same input to the hash function.
func Hash(index uint64, previousHash string, timestamp float64, data string) string {
	fields := []string{
		strconv.FormatUint(index, 10),
		previousHash,
		formatTimestamp(timestamp),
		data,
	}

	h := sha256.New()
	for _, field := range fields {
		fmt.Fprintf(h, "%d:%s,", len(field), field)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// formatTimestamp renders the timestamp with the fewest digits required to
// represent it exactly.
func formatTimestamp(timestamp float64) string {
	return strconv.FormatFloat(timestamp, 'f', -1, 64)
}
