// Package chain implements a toy block structure, chained hashing and a
// tiny proof-of-work search — the minimal collaborator that gives the
// bytecode interpreter somewhere to deploy and call contracts from.
package chain

import (
	"encoding/binary"
	"time"

	"github.com/tinychain-go/tinychain/util"
)

// Difficulty is the fixed number of leading zero bits a sealed block's hash
// must have. Fixed rather than retargeted — this node has no network
// hash-rate to retarget against, grounded on the teacher/pack's own use of a
// static difficulty for local dev chains.
const Difficulty = 16

// Call is one deployed-or-invoked piece of bytecode recorded in a block,
// alongside the call-data it ran with and the result it produced.
type Call struct {
	Code       util.ByteSlice `json:"code"`
	CallData   util.ByteSlice `json:"call_data"`
	ReturnData util.ByteSlice `json:"return_data"`
	GasUsed    uint64         `json:"gas_used"`
	Reverted   bool           `json:"reverted"`
}

// Block is a minimal, parent-linked, proof-of-work-sealed container of
// Calls — deliberately not a full Ethereum block (no receipts trie, no
// uncle list, no transaction signatures; signature verification and
// persistent state are explicit Non-goals).
type Block struct {
	Number     uint64    `json:"number"`
	ParentHash [32]byte  `json:"parent_hash"`
	Timestamp  int64     `json:"timestamp"`
	Calls      []Call    `json:"calls"`
	Nonce      uint64    `json:"nonce"`
	Hash       [32]byte  `json:"hash"`
}

// hashNoNonce hashes everything about the block except Nonce — the value
// the PoW search repeatedly re-hashes with different nonces, grounded on
// the teacher pack's own Block.HashNoNonce/Pow.Verify split.
func (b *Block) hashNoNonce() []byte {
	buf := make([]byte, 0, 8+32+8)
	var numBuf [8]byte
	binary.BigEndian.PutUint64(numBuf[:], b.Number)
	buf = append(buf, numBuf[:]...)
	buf = append(buf, b.ParentHash[:]...)
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(b.Timestamp))
	buf = append(buf, tsBuf[:]...)
	for _, c := range b.Calls {
		buf = append(buf, c.Code...)
		buf = append(buf, c.CallData...)
	}
	return util.Sha3(buf)
}

// NewBlock builds an unsealed block on top of parent, stamped with the
// current time; call Seal to find a valid nonce.
func NewBlock(number uint64, parentHash [32]byte, calls []Call) *Block {
	return &Block{
		Number:     number,
		ParentHash: parentHash,
		Timestamp:  time.Now().Unix(),
		Calls:      calls,
	}
}
