package vm

// pop pops one operand, stamping the current pc onto any StackUnderflow so
// callers don't have to.
func (ctx *ExecutionContext) pop() (Word256, error) {
	v, err := ctx.Stack.Pop()
	if err != nil {
		err.(*Error).Pc = ctx.Pc
	}
	return v, err
}

func (ctx *ExecutionContext) push(v Word256) error {
	if err := ctx.Stack.Push(v); err != nil {
		err.(*Error).Pc = ctx.Pc
		return err
	}
	return nil
}

// opArith pops two words, applies fn, pushes the result. Every binary
// arithmetic/bitwise/shift opcode shares this shape; the teacher's
// aj3423-edb/opcode.go repeats the same pop-pop-push body per opcode, this
// core factors it once since Go's generics-era idiom favors the shared
// higher-order helper the rest of the pack also leans on.
// opArith pops x (top) then y (second) and pushes fn(x, y) — the stack's
// top is always the first operand (SUB: top-second, DIV: top/second, and so
// on); BYTE/SIGNEXTEND/SHL/SHR/SAR/EXP's (index,val)/(shift,val)/(base,exp)
// argument order all happen to agree with (top, second) too.
func opArith(fn func(x, y Word256) Word256) opHandler {
	return func(ctx *ExecutionContext) error {
		x, err := ctx.pop()
		if err != nil {
			return err
		}
		y, err := ctx.pop()
		if err != nil {
			return err
		}
		return ctx.push(fn(x, y))
	}
}

// opArith3 is opArith's three-operand sibling, for ADDMOD/MULMOD: pops
// a (top), b (second), m (third), pushes fn(a, b, m).
func opArith3(fn func(a, b, m Word256) Word256) opHandler {
	return func(ctx *ExecutionContext) error {
		a, err := ctx.pop()
		if err != nil {
			return err
		}
		b, err := ctx.pop()
		if err != nil {
			return err
		}
		m, err := ctx.pop()
		if err != nil {
			return err
		}
		return ctx.push(fn(a, b, m))
	}
}

func opCompare(fn func(x, y Word256) bool) opHandler {
	return func(ctx *ExecutionContext) error {
		x, err := ctx.pop()
		if err != nil {
			return err
		}
		y, err := ctx.pop()
		if err != nil {
			return err
		}
		if fn(x, y) {
			return ctx.push(WordFromUint64(1))
		}
		return ctx.push(ZeroWord)
	}
}

func opIsZero(ctx *ExecutionContext) error {
	a, err := ctx.pop()
	if err != nil {
		return err
	}
	if a.IsZero() {
		return ctx.push(WordFromUint64(1))
	}
	return ctx.push(ZeroWord)
}

func opNot(ctx *ExecutionContext) error {
	a, err := ctx.pop()
	if err != nil {
		return err
	}
	return ctx.push(wNot(a))
}

func opStop(ctx *ExecutionContext) error {
	ctx.Halted = true
	return nil
}

func opPop(ctx *ExecutionContext) error {
	_, err := ctx.pop()
	return err
}

func opPush(n int) opHandler {
	return func(ctx *ExecutionContext) error {
		start := ctx.Pc + 1
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			buf[i] = ctx.codeByteOrZero(start + uint64(i))
		}
		if err := ctx.push(WordFromBigEndian(buf)); err != nil {
			return err
		}
		ctx.Pc = start + uint64(n)
		ctx.jumped = true
		return nil
	}
}

func opDup(n int) opHandler {
	return func(ctx *ExecutionContext) error {
		if err := ctx.Stack.Dup(n); err != nil {
			err.(*Error).Pc = ctx.Pc
			return err
		}
		return nil
	}
}

func opSwap(n int) opHandler {
	return func(ctx *ExecutionContext) error {
		if err := ctx.Stack.Swap(n); err != nil {
			err.(*Error).Pc = ctx.Pc
			return err
		}
		return nil
	}
}

func opMLoad(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "offset %s exceeds addressable range", offset)
	}
	return ctx.push(ctx.Memory.Load32(off))
}

func opMStore(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	val, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "offset %s exceeds addressable range", offset)
	}
	ctx.Memory.Set32(off, val)
	return nil
}

func opMStore8(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	val, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "offset %s exceeds addressable range", offset)
	}
	b := val.ToBigEndian()
	ctx.Memory.Set(off, 1, b[31:32])
	return nil
}

func opMSize(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(ctx.Memory.Len()))
}

func opSLoad(ctx *ExecutionContext) error {
	key, err := ctx.pop()
	if err != nil {
		return err
	}
	return ctx.push(ctx.Storage.Load(key))
}

func opSStore(ctx *ExecutionContext) error {
	key, err := ctx.pop()
	if err != nil {
		return err
	}
	val, err := ctx.pop()
	if err != nil {
		return err
	}
	ctx.Storage.Store(key, val)
	return nil
}

// opJumpdest is a no-op marker; jump targets are validated at jump time.
func opJumpdest(ctx *ExecutionContext) error { return nil }

// isValidJumpDest reports whether pc indexes a JUMPDEST byte that is not
// itself inside a PUSH-N's inline data — spec.md §4.7's InvalidJump contract.
func (ctx *ExecutionContext) isValidJumpDest(pc uint64) bool {
	if pc >= uint64(len(ctx.Code)) {
		return false
	}
	if OpCode(ctx.Code[pc]) != JUMPDEST {
		return false
	}
	// Walk from the start of code to confirm pc lands on an instruction
	// boundary, not inside a preceding PUSH's data.
	i := uint64(0)
	for i < pc {
		op := OpCode(ctx.Code[i])
		if n, ok := op.IsPush(); ok {
			i += uint64(n) + 1
			continue
		}
		i++
	}
	return i == pc
}

func opJump(ctx *ExecutionContext) error {
	dest, err := ctx.pop()
	if err != nil {
		return err
	}
	target, overflow := dest.Uint64WithOverflow()
	if overflow || !ctx.isValidJumpDest(target) {
		return newErr(InvalidJump, ctx.Pc, "target %s is not a JUMPDEST", dest)
	}
	ctx.Pc = target
	ctx.jumped = true
	return nil
}

func opJumpi(ctx *ExecutionContext) error {
	dest, err := ctx.pop()
	if err != nil {
		return err
	}
	cond, err := ctx.pop()
	if err != nil {
		return err
	}
	if cond.IsZero() {
		return nil
	}
	target, overflow := dest.Uint64WithOverflow()
	if overflow || !ctx.isValidJumpDest(target) {
		return newErr(InvalidJump, ctx.Pc, "target %s is not a JUMPDEST", dest)
	}
	ctx.Pc = target
	ctx.jumped = true
	return nil
}

func opPC(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(ctx.Pc))
}

func opGas(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(ctx.Gas))
}

func opCodeSize(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(uint64(len(ctx.Code))))
}

func opCodeCopy(ctx *ExecutionContext) error {
	destOffset, err := ctx.pop()
	if err != nil {
		return err
	}
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	size, err := ctx.pop()
	if err != nil {
		return err
	}
	return ctx.copyFrom(ctx.Code, destOffset, offset, size)
}

func opCallValue(ctx *ExecutionContext) error {
	return ctx.push(ZeroWord)
}

func opCallDataLoad(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return ctx.push(ZeroWord)
	}
	buf := make([]byte, 32)
	for i := 0; i < 32; i++ {
		idx := off + uint64(i)
		if idx < uint64(len(ctx.CallData)) {
			buf[i] = ctx.CallData[idx]
		}
	}
	return ctx.push(WordFromBigEndian(buf))
}

func opCallDataSize(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(uint64(len(ctx.CallData))))
}

func opCallDataCopy(ctx *ExecutionContext) error {
	destOffset, err := ctx.pop()
	if err != nil {
		return err
	}
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	size, err := ctx.pop()
	if err != nil {
		return err
	}
	return ctx.copyFrom(ctx.CallData, destOffset, offset, size)
}

func opReturnDataSize(ctx *ExecutionContext) error {
	return ctx.push(WordFromUint64(uint64(len(ctx.ReturnData))))
}

// copyFrom implements the *COPY family shared shape: copy size bytes from
// src[offset:] into memory at destOffset, zero-padding past src's end.
func (ctx *ExecutionContext) copyFrom(src []byte, destOffset, offset, size Word256) error {
	sz, overflow := size.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "size %s exceeds addressable range", size)
	}
	if sz == 0 {
		return nil
	}
	dOff, overflow := destOffset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "dest offset %s exceeds addressable range", destOffset)
	}
	sOff, overflow := offset.Uint64WithOverflow()
	if overflow {
		sOff = uint64(len(src))
	}
	buf := make([]byte, sz)
	for i := uint64(0); i < sz; i++ {
		idx := sOff + i
		if idx < uint64(len(src)) {
			buf[i] = src[idx]
		}
	}
	ctx.Memory.Set(dOff, sz, buf)
	return nil
}

func opReturn(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	size, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "offset %s exceeds addressable range", offset)
	}
	sz, overflow := size.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "size %s exceeds addressable range", size)
	}
	ctx.ReturnData = ctx.Memory.GetCopy(off, sz)
	ctx.Halted = true
	return nil
}

func opRevert(ctx *ExecutionContext) error {
	offset, err := ctx.pop()
	if err != nil {
		return err
	}
	size, err := ctx.pop()
	if err != nil {
		return err
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "offset %s exceeds addressable range", offset)
	}
	sz, overflow := size.Uint64WithOverflow()
	if overflow {
		return newErr(MemoryOutOfBounds, ctx.Pc, "size %s exceeds addressable range", size)
	}
	ctx.ReturnData = ctx.Memory.GetCopy(off, sz)
	ctx.Reverted = true
	return newErr(Revert, ctx.Pc, "")
}

func opInvalid(ctx *ExecutionContext) error {
	return newErr(InvalidOpcode, ctx.Pc, "%s", explainInvalid(INVALID))
}
