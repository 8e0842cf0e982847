package vm

// Step executes exactly one instruction: fetch, charge gas, dispatch,
// advance. Grounded on the teacher's aj3423-edb/interpreter.go Run loop,
// generalized into a single-step method so both Run and an external
// stepping debugger (the REPL's `n` command) can drive it one tick at a
// time — spec.md §5's Dispatcher component.
func (ctx *ExecutionContext) Step() error {
	if !ctx.running() {
		return nil
	}
	if ctx.Pc >= uint64(len(ctx.Code)) {
		ctx.Halted = true
		return nil
	}

	op := OpCode(ctx.Code[ctx.Pc])
	pc := ctx.Pc

	for _, h := range ctx.Hooks {
		if err := h.PreStep(ctx, pc, op); err != nil {
			ctx.LastErr = asVMError(err, pc)
			return ctx.LastErr
		}
	}

	cost := gasCost(op)
	if ctx.Gas < cost {
		err := newErr(OutOfGas, pc, "need %d, have %d", cost, ctx.Gas)
		ctx.LastErr = err
		return err
	}
	ctx.Gas -= cost

	handler := jumpTable[op]
	if handler == nil {
		err := newErr(InvalidOpcode, pc, "%s", explainInvalid(op))
		ctx.LastErr = err
		return err
	}

	ctx.jumped = false
	if err := handler(ctx); err != nil {
		ctx.LastErr = asVMError(err, pc)
		return ctx.LastErr
	}

	if !ctx.jumped && ctx.running() {
		ctx.Pc = pc + 1
	}

	for _, h := range ctx.Hooks {
		h.PostStep(ctx, pc, op)
	}

	return nil
}

// asVMError stamps pc onto a bare error if it arrived without one attached
// (a Hook, eg. a breakpoint, raising a plain sentinel error rather than a
// *vm.Error). The original error is kept as cause so errors.Is/As still
// sees through the synthesized *Error — trace.IsBreakpoint relies on this.
func asVMError(err error, pc uint64) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	e := newErr(InvalidOpcode, pc, "%s", err.Error())
	e.cause = err
	return e
}

// Run drives Step until the context halts, reverts, or maxSteps is
// exhausted (0 means unbounded) — spec.md §5's fetch-decode-execute loop.
// A Revert is returned as an error carrying ReturnData on ctx, matching
// spec.md §7's contract that callers distinguish Revert from other failures
// via IsRevert.
func (ctx *ExecutionContext) Run(maxSteps int) error {
	steps := 0
	for ctx.running() {
		if err := ctx.Step(); err != nil {
			return err
		}
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			return newErr(OutOfGas, ctx.Pc, "step budget %d exhausted", maxSteps)
		}
	}
	return nil
}

// Execute is the package-level entry point spec.md §6 describes: run code
// against callData with gasLimit, returning return-data, gas used, and an
// error that is nil only on a clean STOP/RETURN.
func Execute(code, callData []byte, gasLimit uint64) ([]byte, uint64, error) {
	ctx := NewExecutionContext(code, callData, gasLimit)
	err := ctx.Run(0)
	return ctx.ReturnData, ctx.GasUsed(), err
}

// ExecuteWithHooks is Execute's diagnostic-friendly sibling: it returns the
// final context so callers (vm/trace, the REPL) can inspect stack, memory
// and storage after the run, and attaches hooks before the first step.
func ExecuteWithHooks(code, callData []byte, gasLimit uint64, hooks ...Hook) (*ExecutionContext, error) {
	ctx := NewExecutionContext(code, callData, gasLimit)
	for _, h := range hooks {
		ctx.AttachHook(h)
	}
	err := ctx.Run(0)
	return ctx, err
}
