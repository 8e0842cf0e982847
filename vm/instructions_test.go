package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// PUSH1 1 PUSH1 2 PUSH1 3 DUP3 -> [1,2,3,1], return top word (1).
func TestDupOpcode(t *testing.T) {
	code := concat(
		push1(1), push1(2), push1(3),
		[]byte{byte(DUP3)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(1), ret)
}

// PUSH1 1 PUSH1 2 SWAP1 -> top becomes 1.
func TestSwapOpcode(t *testing.T) {
	code := concat(
		push1(1), push1(2),
		[]byte{byte(SWAP1)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(1), ret)
}

// BYTE extracts byte 31 (least significant) of 0x2a.
func TestByteOpcodeBigEndianIndex(t *testing.T) {
	code := concat(
		push1(0x2a), push1(31), []byte{byte(BYTE)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(0x2a), ret)
}

// SIGNEXTEND(0, 0xff) treats 0xff as a negative single byte, sign-extends
// to all-ones.
func TestSignExtendNegativeByte(t *testing.T) {
	code := concat(
		push1(0xff), push1(0), []byte{byte(SIGNEXTEND)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	for _, b := range ret {
		assert.Equal(t, byte(0xff), b)
	}
}

// MLOAD past written memory returns zero, growing memory rather than
// failing.
func TestMLoadGrowsMemory(t *testing.T) {
	code := concat(
		push1(64), []byte{byte(MLOAD)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(0), ret)
}

func TestSstoreKeepsZeroValuedKey(t *testing.T) {
	ctx := NewExecutionContext(nil, nil, 1_000_000)
	ctx.Storage.Store(WordFromUint64(1), ZeroWord)
	snap := ctx.Storage.Snapshot()
	_, ok := snap[WordFromUint64(1)]
	assert.True(t, ok)
}
