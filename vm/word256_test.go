package vm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordRoundTrip(t *testing.T) {
	w := WordFromUint64(42)
	assert.Equal(t, uint64(42), w.Uint64())
	assert.False(t, w.IsZero())
	assert.True(t, ZeroWord.IsZero())
}

func TestWordFromBigEndianRightAligns(t *testing.T) {
	w := WordFromBigEndian([]byte{0x2a})
	assert.Equal(t, uint64(42), w.Uint64())
}

func TestWAddWraps(t *testing.T) {
	max := wNot(ZeroWord)
	one := WordFromUint64(1)
	assert.True(t, wAdd(max, one).IsZero())
}

func TestWSubNonCommutative(t *testing.T) {
	ten := WordFromUint64(10)
	three := WordFromUint64(3)
	assert.Equal(t, uint64(7), wSub(ten, three).Uint64())
}

func TestWDivByZeroYieldsZero(t *testing.T) {
	ten := WordFromUint64(10)
	assert.True(t, wDiv(ten, ZeroWord).IsZero())
}

func TestWShlShrRoundTrip(t *testing.T) {
	v := WordFromUint64(1)
	shifted := wShl(WordFromUint64(8), v)
	assert.Equal(t, uint64(256), shifted.Uint64())
	assert.Equal(t, uint64(1), wShr(WordFromUint64(8), shifted).Uint64())
}

func TestWShlOverflowIsZero(t *testing.T) {
	assert.True(t, wShl(WordFromUint64(256), WordFromUint64(1)).IsZero())
}

func TestWByteExtractsMostSignificantFirst(t *testing.T) {
	// 0x00...00 0102 -> byte 30 is 0x01, byte 31 is 0x02
	w := WordFromBigEndian([]byte{0x01, 0x02})
	assert.Equal(t, uint64(1), wByte(WordFromUint64(30), w).Uint64())
	assert.Equal(t, uint64(2), wByte(WordFromUint64(31), w).Uint64())
	assert.True(t, wByte(WordFromUint64(32), w).IsZero())
}

// Word256 must marshal as JSON text so it can be used as a map key (the
// REPL's `storage` command marshals map[Word256]Word256 snapshots).
func TestWordMarshalsAsMapKey(t *testing.T) {
	m := map[Word256]Word256{WordFromUint64(1): WordFromUint64(42)}
	bs, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.NotEmpty(t, bs)

	var back map[Word256]Word256
	assert.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, WordFromUint64(42), back[WordFromUint64(1)])
}
