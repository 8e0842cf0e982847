package trace

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/tinychain-go/tinychain/vm"
)

// LowLevelTracer prints a human-readable line per instruction, grounded on
// the teacher's aj3423-edb/hooks/low_level_tracer.go — trimmed of the
// CALL/DELEGATECALL/STATICCALL/LOG*/SHA3/environment-opcode cases this core
// doesn't implement (sub-calls, logs and hashing are Non-goals).
type LowLevelTracer struct {
	*ParamTracer
}

func NewLowLevelTracer() *LowLevelTracer {
	return &LowLevelTracer{ParamTracer: &ParamTracer{}}
}

func (t *LowLevelTracer) PreStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) error {
	return t.ParamTracer.PreStep(ctx, pc, op)
}

func (t *LowLevelTracer) PostStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) {
	t.ParamTracer.PostStep(ctx, pc, op)

	switch op {
	case vm.MLOAD:
		color.White("  %s = mem[%s]", top(t.StackPost, 0), top(t.StackPre, 0))
	case vm.MSTORE, vm.MSTORE8:
		color.White("  mem[%s] = %s", top(t.StackPre, 0), top(t.StackPre, 1))
	case vm.SLOAD:
		color.White("  %s = storage[%s]", top(t.StackPost, 0), top(t.StackPre, 0))
	case vm.SSTORE:
		color.White("  storage[%s] = %s", top(t.StackPre, 0), top(t.StackPre, 1))

	case vm.PC, vm.MSIZE, vm.GAS:
		color.White("  %s = %s", top(t.StackPost, 0), op)

	case vm.ISZERO, vm.NOT:
		color.White("  %s(%s) -> %s", op, top(t.StackPre, 0), top(t.StackPost, 0))

	case vm.ADD, vm.MUL, vm.SUB, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD, vm.EXP,
		vm.SHL, vm.SHR, vm.SAR, vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ,
		vm.SIGNEXTEND, vm.AND, vm.OR, vm.XOR, vm.BYTE:
		color.White("  %s(%s, %s) -> %s",
			op, top(t.StackPre, 0), top(t.StackPre, 1), top(t.StackPost, 0))

	case vm.ADDMOD, vm.MULMOD:
		color.White("  %s(%s, %s, %s) -> %s",
			op, top(t.StackPre, 0), top(t.StackPre, 1), top(t.StackPre, 2), top(t.StackPost, 0))
	}
}

// EvmLog writes a full trace log, one line per instruction, eg:
//
//	0  PUSH1
//	2  PUSH1
//	4  MSTORE
//	...
//
// Grounded on the teacher's aj3423-edb/hooks/low_level_tracer.go EvmLog.
type EvmLog struct {
	W io.Writer
}

func (t *EvmLog) PreStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) error {
	fmt.Fprintf(t.W, "%d\t%s\n", pc, op)
	return nil
}

func (t *EvmLog) PostStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) {}
