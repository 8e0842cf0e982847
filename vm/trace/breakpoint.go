// Package trace provides diagnostic hooks — breakpoints and instruction
// tracing — that attach to a running vm.ExecutionContext without the core
// interpreter depending on them.
package trace

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tinychain-go/tinychain/vm"
)

// ErrBreakpoint is the sentinel wrapped by a triggered breakpoint's error,
// distinguishing "execution paused" from a real vm.Error.
var ErrBreakpoint = errors.New("breakpoint")

// BpPc halts execution when pc reaches Pc.
type BpPc struct {
	Pc uint64
}

func (bp *BpPc) String() string { return fmt.Sprintf("@ pc=%d", bp.Pc) }

func (bp *BpPc) PreStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) error {
	if pc != bp.Pc {
		return nil
	}
	return errors.Wrap(ErrBreakpoint, bp.String())
}

func (bp *BpPc) PostStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) {}

// BpOpCode halts execution the first time OpCode is about to run, eg.
// "break at SSTORE".
type BpOpCode struct {
	OpCode vm.OpCode
}

func (bp *BpOpCode) String() string { return fmt.Sprintf("@ opcode=%s", bp.OpCode) }

func (bp *BpOpCode) PreStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) error {
	if op != bp.OpCode {
		return nil
	}
	return errors.Wrap(ErrBreakpoint, bp.String())
}

func (bp *BpOpCode) PostStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) {}

// IsBreakpoint reports whether err was raised by a breakpoint hook, so a
// caller driving Step in a loop can distinguish "paused" from "failed".
func IsBreakpoint(err error) bool {
	return errors.Is(err, ErrBreakpoint)
}
