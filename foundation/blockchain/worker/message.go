package worker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
)

// ErrInvalidMessage is returned when a message received from a peer can't
// be parsed.
var ErrInvalidMessage = errors.New("invalid message")

// MessageType identifies the kind of message exchanged between peers.
type MessageType int

// Set of message types understood by the peer protocol.
const (
	MessageQueryLatest        MessageType = 0
	MessageQueryAll           MessageType = 1
	MessageResponseBlockchain MessageType = 2
)

// String implements the fmt.Stringer interface.
func (mt MessageType) String() string {
	switch mt {
	case MessageQueryLatest:
		return "QUERY_LATEST"
	case MessageQueryAll:
		return "QUERY_ALL"
	case MessageResponseBlockchain:
		return "RESPONSE_BLOCKCHAIN"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(mt))
}

// =============================================================================

// Message represents a message exchanged between peers. Only the
// RESPONSE_BLOCKCHAIN message carries data, a sequence of blocks.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewQueryLatest constructs a message asking a peer for its latest block.
func NewQueryLatest() Message {
	return Message{Type: MessageQueryLatest}
}

// NewQueryAll constructs a message asking a peer for its full chain.
func NewQueryAll() Message {
	return Message{Type: MessageQueryAll}
}

// NewResponseBlockchain constructs a message carrying the specified blocks.
func NewResponseBlockchain(blocks []database.Block) (Message, error) {
	data, err := json.Marshal(blocks)
	if err != nil {
		return Message{}, err
	}

	return Message{Type: MessageResponseBlockchain, Data: data}, nil
}

// Encode returns the wire form of the message.
func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Blocks decodes the sequence of blocks carried by the message. The blocks
// are returned in wire form so their structure can be validated. The array
// may also arrive encoded inside a JSON string.
func (m Message) Blocks() ([]database.BlockData, error) {
	if m.Type != MessageResponseBlockchain {
		return nil, fmt.Errorf("%w: %s carries no blocks", ErrInvalidMessage, m.Type)
	}

	data := []byte(m.Data)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: blocks: %s", ErrInvalidMessage, err)
		}
		data = []byte(s)
	}

	var bds []database.BlockData
	if err := json.Unmarshal(data, &bds); err != nil {
		return nil, fmt.Errorf("%w: blocks: %s", ErrInvalidMessage, err)
	}

	if bds == nil {
		return nil, fmt.Errorf("%w: blocks missing", ErrInvalidMessage)
	}

	return bds, nil
}

// DecodeMessage parses a message received from a peer.
func DecodeMessage(data []byte) (Message, error) {
	var raw struct {
		Type *MessageType    `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %s", ErrInvalidMessage, err)
	}

	if raw.Type == nil {
		return Message{}, fmt.Errorf("%w: type missing", ErrInvalidMessage)
	}

	switch *raw.Type {
	case MessageQueryLatest, MessageQueryAll, MessageResponseBlockchain:
	default:
		return Message{}, fmt.Errorf("%w: unknown type %d", ErrInvalidMessage, int(*raw.Type))
	}

	return Message{Type: *raw.Type, Data: raw.Data}, nil
}
