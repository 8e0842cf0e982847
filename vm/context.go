package vm

// Hook lets external tooling (vm/trace's breakpoints and instruction tracer)
// observe each dispatcher tick without the core depending on them. Defined
// here, in the core, so vm/trace can depend on vm without a cycle.
type Hook interface {
	// PreStep runs before the handler for the instruction at pc. Returning
	// an error stops execution (used by breakpoints).
	PreStep(ctx *ExecutionContext, pc uint64, op OpCode) error
	// PostStep runs after the handler for the instruction at pc completed
	// without error.
	PostStep(ctx *ExecutionContext, pc uint64, op OpCode)
}

// ExecutionContext is the only mutable aggregate spec.md §3 describes: it
// owns its stack, memory and storage, borrows code and call-data for the
// duration of one execution, and owns the return-data it produces.
type ExecutionContext struct {
	Stack   *Stack
	Memory  *Memory
	Storage *Storage

	Code     []byte
	CallData []byte

	ReturnData []byte

	Pc       uint64
	Gas      uint64
	GasLimit uint64

	Halted   bool
	Reverted bool
	LastErr  *Error

	Hooks []Hook

	// jumped is set by handlers that move Pc themselves (JUMP, taken JUMPI,
	// PUSH-N) so the dispatcher knows not to also advance it — spec.md §9's
	// "handlers that change PC are the only ones that change PC".
	jumped bool
}

// NewExecutionContext creates a fresh context for one top-level invocation,
// per spec.md §3's lifecycle ("created per top-level invocation; destroyed
// after the dispatcher exits").
func NewExecutionContext(code, callData []byte, gasLimit uint64) *ExecutionContext {
	return &ExecutionContext{
		Stack:    NewStack(),
		Memory:   NewMemory(),
		Storage:  NewStorage(),
		Code:     code,
		CallData: callData,
		Gas:      gasLimit,
		GasLimit: gasLimit,
	}
}

// GasUsed reports gas consumed so far, the value spec.md §6's extended entry
// point reports on return.
func (ctx *ExecutionContext) GasUsed() uint64 { return ctx.GasLimit - ctx.Gas }

// AttachHook registers a Hook to observe subsequent dispatcher ticks.
func (ctx *ExecutionContext) AttachHook(h Hook) { ctx.Hooks = append(ctx.Hooks, h) }

func (ctx *ExecutionContext) running() bool { return !ctx.Halted && !ctx.Reverted }

// codeByteOrZero reads code[pc], or STOP (0) past the end — code is never actually
// executed past its length (the dispatcher loop exits first), this is only
// used by handlers peeking ahead (PUSH-N reading past a short tail).
func (ctx *ExecutionContext) codeByteOrZero(pc uint64) byte {
	if pc >= uint64(len(ctx.Code)) {
		return 0
	}
	return ctx.Code[pc]
}
