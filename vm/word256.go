package vm

import (
	"github.com/holiman/uint256"
)

// Word256 is the universal 256-bit unsigned operand type the interpreter
// pushes, pops, stores and loads everywhere. It is a thin wrapper around
// holiman/uint256.Int: the teacher's own opcode handlers
// (aj3423-edb/opcode.go) operate directly on *uint256.Int, and every
// geth-family repo in the retrieval pack uses the same library. Wrapping it
// (rather than aliasing it) keeps Word256's surface limited to what spec.md
// §4.1 describes.
//
// Mul is exact here, not the high-half-zero approximation spec.md documents
// as acceptable for languages without a wide-integer library — see
// DESIGN.md, "Open Questions", #2.
type Word256 struct {
	i uint256.Int
}

// ZeroWord is the zero value; included for readability at call sites.
var ZeroWord = Word256{}

// WordFromUint64 builds a Word256 from a native uint64.
func WordFromUint64(v uint64) Word256 {
	var w Word256
	w.i.SetUint64(v)
	return w
}

// WordFromBigEndian parses up to 32 bytes as a big-endian integer,
// right-aligning short slices — spec.md §4.1's from_be_bytes.
func WordFromBigEndian(b []byte) Word256 {
	var w Word256
	w.i.SetBytes(b)
	return w
}

// ToBigEndian serializes to exactly 32 big-endian bytes — spec.md §4.1's
// to_be_bytes.
func (w Word256) ToBigEndian() [32]byte {
	return w.i.Bytes32()
}

func (w Word256) IsZero() bool { return w.i.IsZero() }

func (w Word256) Uint64() uint64 { return w.i.Uint64() }

// Uint64WithOverflow returns the low 64 bits and whether any higher bits are
// set — used by handlers whose offsets/lengths must fit a native size type
// (spec.md's MemoryOutOfBounds trigger).
func (w Word256) Uint64WithOverflow() (uint64, bool) {
	return w.i.Uint64WithOverflow()
}

func (w Word256) String() string { return w.i.Hex() }

// MarshalText renders the hex form uint256.Int itself uses, so a Word256 is
// usable as a JSON map key (encoding/json requires string/int/TextMarshaler
// keys) — the REPL's `storage`/`stack` commands marshal map[Word256]Word256
// and []Word256 straight through this.
func (w Word256) MarshalText() ([]byte, error) { return w.i.MarshalText() }

func (w *Word256) UnmarshalText(text []byte) error { return w.i.UnmarshalText(text) }

func wAdd(a, b Word256) Word256 {
	var r Word256
	r.i.Add(&a.i, &b.i)
	return r
}

func wSub(a, b Word256) Word256 {
	var r Word256
	r.i.Sub(&a.i, &b.i)
	return r
}

// wMul is exact: uint256.Int.Mul already performs full 256-bit wrapping
// multiplication, so there is no high-half-nonzero regime to approximate.
func wMul(a, b Word256) Word256 {
	var r Word256
	r.i.Mul(&a.i, &b.i)
	return r
}

// wDiv follows the bytecode convention: division by zero yields zero.
func wDiv(a, b Word256) Word256 {
	var r Word256
	r.i.Div(&a.i, &b.i)
	return r
}

func wMod(a, b Word256) Word256 {
	var r Word256
	r.i.Mod(&a.i, &b.i)
	return r
}

func wSDiv(a, b Word256) Word256 {
	var r Word256
	r.i.SDiv(&a.i, &b.i)
	return r
}

func wSMod(a, b Word256) Word256 {
	var r Word256
	r.i.SMod(&a.i, &b.i)
	return r
}

func wAddMod(a, b, m Word256) Word256 {
	var r Word256
	r.i.AddMod(&a.i, &b.i, &m.i)
	return r
}

func wMulMod(a, b, m Word256) Word256 {
	var r Word256
	r.i.MulMod(&a.i, &b.i, &m.i)
	return r
}

func wAnd(a, b Word256) Word256 {
	var r Word256
	r.i.And(&a.i, &b.i)
	return r
}

func wOr(a, b Word256) Word256 {
	var r Word256
	r.i.Or(&a.i, &b.i)
	return r
}

func wXor(a, b Word256) Word256 {
	var r Word256
	r.i.Xor(&a.i, &b.i)
	return r
}

func wNot(a Word256) Word256 {
	var r Word256
	r.i.Not(&a.i)
	return r
}

func wLt(a, b Word256) bool { return a.i.Lt(&b.i) }
func wGt(a, b Word256) bool { return a.i.Gt(&b.i) }
func wEq(a, b Word256) bool { return a.i.Eq(&b.i) }
func wSlt(a, b Word256) bool { return a.i.Slt(&b.i) }
func wSgt(a, b Word256) bool { return a.i.Sgt(&b.i) }

// wByte returns the index'th byte of val, counting from the most
// significant byte, or zero if index >= 32.
func wByte(index, val Word256) Word256 {
	var r Word256
	r.i.Set(&val.i)
	r.i.Byte(&index.i)
	return r
}

// wSignExtend sign-extends val from (back+1)*8 bits to 256 bits.
func wSignExtend(back, val Word256) Word256 {
	var r Word256
	r.i.ExtendSign(&val.i, &back.i)
	return r
}

// wShl implements SHL: shift ≥ 256 yields zero.
func wShl(shift, value Word256) Word256 {
	var r Word256
	if shift.i.LtUint64(256) {
		r.i.Lsh(&value.i, uint(shift.i.Uint64()))
	}
	return r
}

// wShr implements SHR: shift ≥ 256 yields zero.
func wShr(shift, value Word256) Word256 {
	var r Word256
	if shift.i.LtUint64(256) {
		r.i.Rsh(&value.i, uint(shift.i.Uint64()))
	}
	return r
}

// wSar implements SAR: shift ≥ 256 yields all-ones if the sign bit of value
// is set, else zero.
func wSar(shift, value Word256) Word256 {
	var r Word256
	if shift.i.GtUint64(255) {
		if value.i.Sign() >= 0 {
			return r
		}
		r.i.SetAllOne()
		return r
	}
	r.i.SRsh(&value.i, uint(shift.i.Uint64()))
	return r
}

func wExp(base, exponent Word256) Word256 {
	var r Word256
	r.i.Exp(&base.i, &exponent.i)
	return r
}
