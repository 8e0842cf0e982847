// Package p2p gossips newly sealed blocks between nodes over websockets.
// It is deliberately not a production consensus/networking stack (no peer
// scoring, no encrypted transport, no discovery protocol) — spec.md's
// Non-goals exclude a production-grade p2p layer; this exists only so more
// than one node process can observe the same chain of deployed/called
// bytecode.
package p2p

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/tinychain-go/tinychain/internal/chain"
)

// MessageKind distinguishes the handful of envelope shapes this gossip
// protocol exchanges.
type MessageKind string

const (
	KindHello   MessageKind = "hello"
	KindBlock   MessageKind = "block"
	KindRequest MessageKind = "request_height"
)

// Message is the single wire envelope every peer reads and writes,
// following the teacher's own hex-JSON-over-the-wire convention
// (util.ByteSlice) rather than a binary/RLP codec.
type Message struct {
	ID      uuid.UUID       `json:"id"`
	From    uuid.UUID       `json:"from"`
	Kind    MessageKind     `json:"kind"`
	Block   *chain.Block    `json:"block,omitempty"`
	Height  uint64          `json:"height,omitempty"`
}

func newMessage(from uuid.UUID, kind MessageKind) Message {
	return Message{ID: uuid.New(), From: from, Kind: kind}
}

func (m Message) encode() ([]byte, error) { return json.Marshal(m) }

func decodeMessage(b []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(b, &m)
	return m, err
}
