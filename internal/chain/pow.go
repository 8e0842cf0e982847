package chain

import (
	"encoding/binary"
	"math/bits"

	"github.com/tinychain-go/tinychain/util"
)

// leadingZeroBits counts how many leading bits of hash are zero.
func leadingZeroBits(hash []byte) int {
	n := 0
	for _, b := range hash {
		if b == 0 {
			n += 8
			continue
		}
		n += bits.LeadingZeros8(b)
		break
	}
	return n
}

// Seal searches for a nonce whose hashNoNonce+nonce digest has at least
// Difficulty leading zero bits, grounded on the teacher pack's
// PoW.Search/Verify split (other_examples' ethchain block manager calls
// into a PoW interface rather than inlining the search in Block itself).
func (b *Block) Seal() {
	base := b.hashNoNonce()
	var nonce uint64
	for {
		digest := sealDigest(base, nonce)
		if leadingZeroBits(digest) >= Difficulty {
			b.Nonce = nonce
			copy(b.Hash[:], digest)
			return
		}
		nonce++
	}
}

// Verify reports whether b's Nonce/Hash are a valid proof-of-work solution
// for its contents.
func (b *Block) Verify() bool {
	base := b.hashNoNonce()
	digest := sealDigest(base, b.Nonce)
	if leadingZeroBits(digest) < Difficulty {
		return false
	}
	return digest32(digest) == b.Hash
}

func sealDigest(base []byte, nonce uint64) []byte {
	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	return util.Sha3(append(append([]byte(nil), base...), nonceBuf[:]...))
}

func digest32(d []byte) [32]byte {
	var out [32]byte
	copy(out[:], d)
	return out
}
