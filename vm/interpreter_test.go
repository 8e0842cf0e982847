package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func push1(b byte) []byte { return []byte{byte(PUSH1), b} }

func word32(b byte) []byte {
	out := make([]byte, 32)
	out[31] = b
	return out
}

// PUSH1 3 PUSH1 5 ADD PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN -> 8
func TestExecuteAddition(t *testing.T) {
	code := concat(
		push1(3), push1(5), []byte{byte(ADD)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(8), ret)
}

// PUSH1 6 PUSH1 7 MUL PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN -> 42
func TestExecuteMultiplication(t *testing.T) {
	code := concat(
		push1(6), push1(7), []byte{byte(MUL)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(42), ret)
}

// SSTORE 42 at key 0, then SLOAD key 0, return it.
func TestExecuteStorageWriteThenRead(t *testing.T) {
	code := concat(
		push1(42), push1(0), []byte{byte(SSTORE)},
		push1(0), []byte{byte(SLOAD)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(42), ret)
}

// Condition is true (1): PUSH1 1 PUSH1 <dest> JUMPI, fallthrough path
// returns 0, jump target returns 0x37 (55).
func TestExecuteJumpiTaken(t *testing.T) {
	// layout: 0:PUSH1 1(2) 2:PUSH1 dest(2) 4:JUMPI(1) 5:PUSH1 0(2) 7:PUSH1 0(2)
	// 9:RETURN(1) 10:JUMPDEST(1) 11:PUSH1 0x37(2) 13:PUSH1 0(2) 15:MSTORE(1)
	// 16:PUSH1 32(2) 18:PUSH1 0(2) 20:RETURN(1)
	dest := byte(10)
	code := concat(
		push1(1), push1(dest), []byte{byte(JUMPI)},
		push1(0), push1(0), []byte{byte(RETURN)},
		[]byte{byte(JUMPDEST)},
		push1(0x37), push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(0x37), ret)
}

// Condition is false (0): falls through, returns 42.
func TestExecuteJumpiNotTaken(t *testing.T) {
	dest := byte(15)
	code := concat(
		push1(0), push1(dest), []byte{byte(JUMPI)},
		push1(42), push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
		[]byte{byte(JUMPDEST)},
		push1(0xff), push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(42), ret)
}

// Selector dispatch: shr(224, calldataload(0)) extracts the 4-byte
// function selector; add(5,3) => 8.
func TestExecuteSelectorDispatchAdd(t *testing.T) {
	code := concat(
		[]byte{byte(PUSH1), 0}, []byte{byte(CALLDATALOAD)},
		[]byte{byte(PUSH1), 224}, []byte{byte(SHR)},
		// selector now on stack; this program has only one function,
		// so it ignores the selector and reads args directly.
		[]byte{byte(POP)},
		[]byte{byte(PUSH1), 4}, []byte{byte(CALLDATALOAD)}, // arg0 = 5
		[]byte{byte(PUSH1), 36}, []byte{byte(CALLDATALOAD)}, // arg1 = 3
		[]byte{byte(ADD)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	callData := concat(
		[]byte{0xaa, 0xbb, 0xcc, 0xdd}, // 4-byte selector
		word32(5), word32(3),
	)
	ret, _, err := Execute(code, callData, 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(8), ret)
}

// Direct test of spec.md §8's selector-extraction law: shr(224, w) equals
// the top 4 bytes of w, right-aligned. Exercised through CALLDATALOAD+SHR
// rather than asserted on Word256 arithmetic directly, since that's the
// exact expression real selector dispatch uses.
func TestSelectorExtractionLawShr224(t *testing.T) {
	w := []byte{
		0xde, 0xad, 0xbe, 0xef,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		13, 14, 15, 16, 17, 18, 19, 20, 21, 22,
		23, 24, 25, 26, 27, 28,
	}
	assert.Len(t, w, 32)

	code := concat(
		push1(0), []byte{byte(CALLDATALOAD)},
		push1(224), []byte{byte(SHR)},
		push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	ret, _, err := Execute(code, w, 1_000_000)
	assert.NoError(t, err)

	expected := make([]byte, 32)
	copy(expected[28:], w[0:4])
	assert.Equal(t, expected, ret)
}

// A real EQ/JUMPI selector dispatch: one function branch reached by a
// matching selector, a fallback branch (reached on mismatch) that
// CODECOPYs a constant blob stored inline in the code out to memory and
// returns it. Exercises EQ, JUMPI, JUMPDEST and CODECOPY together, unlike
// TestExecuteSelectorDispatchAdd which ignores the selector entirely.
func TestExecuteSelectorDispatchEqJumpiWithCodecopy(t *testing.T) {
	matchSelector := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	fallbackBlob := word32(0x99)

	prefix := concat(
		push1(0), []byte{byte(CALLDATALOAD)},
		push1(224), []byte{byte(SHR)},
		append([]byte{byte(PUSH1 + 3)}, matchSelector...),
		[]byte{byte(EQ)},
	)

	const (
		jumpiLen = 3  // PUSH1 dest, JUMPI
		elseLen  = 12 // PUSH1 size, PUSH1 codeOffset, PUSH1 0, CODECOPY, PUSH1 32, PUSH1 0, RETURN
		matchLen = 11 // JUMPDEST, PUSH1 8, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	)
	dest := byte(len(prefix) + jumpiLen + elseLen)
	codeOffset := byte(int(dest) + matchLen)

	elseBranch := concat(
		push1(32), push1(codeOffset), push1(0), []byte{byte(CODECOPY)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	matchBranch := concat(
		[]byte{byte(JUMPDEST)},
		push1(8), push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(RETURN)},
	)
	assert.Len(t, elseBranch, elseLen)
	assert.Len(t, matchBranch, matchLen)

	code := concat(prefix, push1(dest), []byte{byte(JUMPI)}, elseBranch, matchBranch, fallbackBlob)

	ret, _, err := Execute(code, concat(matchSelector, word32(0), word32(0)), 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, word32(8), ret)

	ret2, _, err := Execute(code, concat([]byte{0x11, 0x22, 0x33, 0x44}, word32(0), word32(0)), 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, fallbackBlob, ret2)
}

// JUMP to a non-JUMPDEST byte at pc 2 fails with InvalidJump.
func TestExecuteInvalidJump(t *testing.T) {
	code := []byte{byte(PUSH1), 2, byte(JUMP), byte(STOP)}
	_, _, err := Execute(code, nil, 1_000_000)
	vmErr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, InvalidJump, vmErr.Kind)
}

// ADD with an empty stack fails with StackUnderflow at pc 0.
func TestExecuteStackUnderflow(t *testing.T) {
	code := []byte{byte(ADD)}
	_, _, err := Execute(code, nil, 1_000_000)
	vmErr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, StackUnderflow, vmErr.Kind)
	assert.Equal(t, uint64(0), vmErr.Pc)
}

// An instruction with a nonzero gas cost (here PUSH1) fails with OutOfGas
// at pc 0 under a zero gas limit.
func TestExecuteOutOfGas(t *testing.T) {
	code := []byte{byte(PUSH1), 1}
	_, _, err := Execute(code, nil, 0)
	vmErr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, OutOfGas, vmErr.Kind)
	assert.Equal(t, uint64(0), vmErr.Pc)
}

// REVERT propagates its memory slice as return-data and a Revert error.
func TestExecuteRevertPropagatesReturnData(t *testing.T) {
	code := concat(
		push1(0xde), push1(0), []byte{byte(MSTORE)},
		push1(32), push1(0), []byte{byte(REVERT)},
	)
	ret, _, err := Execute(code, nil, 1_000_000)
	assert.True(t, IsRevert(err))
	assert.Equal(t, word32(0xde), ret)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
