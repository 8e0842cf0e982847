package vm

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Line is one decoded instruction: its address, mnemonic, and any inline
// operand bytes (PUSH-N's immediate data) — grounded on the teacher's
// aj3423-edb/asm.go Line/Asm pair, stripped of go-ethereum's vm.OpCode and
// the CBOR-metadata trimming step (this core disassembles arbitrary
// bytecode buffers, not compiled Solidity artifacts).
type Line struct {
	Pc   uint64
	Op   OpCode
	Data []byte
}

func (l *Line) String() string {
	if len(l.Data) == 0 {
		return fmt.Sprintf("%6d  %s", l.Pc, l.Op)
	}
	return fmt.Sprintf("%6d  %-12s 0x%x", l.Pc, l.Op, l.Data)
}

// Disasm is a full listing of a code buffer, indexed both by sequence and
// by program counter for the REPL's disassembly window (the `p` command and
// the view shown after each debug step).
type Disasm struct {
	lines []*Line
	byPc  map[uint64]*Line
}

// NewDisasm decodes code into a Disasm. Unlike the teacher's Disasm, a
// reserved/unassigned byte does not abort the listing — it's rendered
// as an opaque line so a fault further into malformed code is still
// reachable (this core has no trailing-CBOR-metadata convention to strip).
func NewDisasm(code []byte) *Disasm {
	d := &Disasm{byPc: map[uint64]*Line{}}
	var pc uint64
	for pc < uint64(len(code)) {
		op := OpCode(code[pc])
		n, _ := op.IsPush()
		start := pc + 1
		end := start + uint64(n)
		if end > uint64(len(code)) {
			end = uint64(len(code))
		}
		line := &Line{Pc: pc, Op: op, Data: append([]byte(nil), code[start:end]...)}
		d.lines = append(d.lines, line)
		d.byPc[pc] = line
		pc = start + uint64(n)
	}
	return d
}

func (d *Disasm) LineCount() int { return len(d.lines) }

func (d *Disasm) LineAt(pc uint64) (*Line, bool) {
	l, ok := d.byPc[pc]
	return l, ok
}

func (d *Disasm) Lines() []*Line { return d.lines }

func (d *Disasm) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// faultWindow is the number of bytes of raw code shown on either side of
// the failing pc in FormatFault — spec.md §4.7's "bounded window around the
// failing pc", fixed at 10 to match the teacher's asm hexdump width.
const faultWindow = 10

// FormatFault renders a colorized, bounded hex dump of code around err.Pc,
// the byte at err.Pc highlighted, for the REPL's error reporter (spec.md
// §4.7). Grounded on the teacher's use of fatih/color to flag the current
// instruction during stepping (aj3423-edb/main's step/continue commands).
func FormatFault(code []byte, err *Error) string {
	if err == nil {
		return ""
	}
	lo := int64(err.Pc) - faultWindow
	if lo < 0 {
		lo = 0
	}
	hi := int64(err.Pc) + faultWindow + 1
	if hi > int64(len(code)) {
		hi = int64(len(code))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", color.RedString("%s", err.Error()))
	for i := lo; i < hi; i++ {
		op := OpCode(code[i])
		cell := fmt.Sprintf("%02x", byte(op))
		if uint64(i) == err.Pc {
			cell = color.New(color.BgRed, color.FgWhite, color.Bold).Sprintf("%02x", byte(op))
		}
		b.WriteString(cell)
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	if note := explainInvalid(OpCode(code[err.Pc])); note != "" {
		fmt.Fprintf(&b, "  %s\n", color.YellowString(note))
	}
	return b.String()
}
