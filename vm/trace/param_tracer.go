package trace

import "github.com/tinychain-go/tinychain/vm"

// ParamTracer snapshots stack and memory around each step, grounded on the
// teacher's aj3423-edb/hooks/param_tracer.go — simplified to capture the
// full stack rather than just an opcode's declared arity, since this core's
// opcode table doesn't carry per-opcode stack-in/out counts the way the
// teacher's OpTable did.
type ParamTracer struct {
	StackPre  []vm.Word256
	StackPost []vm.Word256

	PcPre  uint64
	PcPost uint64

	MemPre  []byte
	MemPost []byte
}

func (t *ParamTracer) PreStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) error {
	t.PcPre = pc
	t.StackPre = ctx.Stack.Items()
	t.MemPre = append(t.MemPre[:0:0], ctx.Memory.Data()...)
	return nil
}

func (t *ParamTracer) PostStep(ctx *vm.ExecutionContext, pc uint64, op vm.OpCode) {
	t.PcPost = ctx.Pc
	t.StackPost = ctx.Stack.Items()
	t.MemPost = append(t.MemPost[:0:0], ctx.Memory.Data()...)
}

// top returns the i'th item from the top of s, or zero if s is too short.
func top(s []vm.Word256, i int) vm.Word256 {
	idx := len(s) - 1 - i
	if idx < 0 {
		return vm.ZeroWord
	}
	return s[idx]
}
