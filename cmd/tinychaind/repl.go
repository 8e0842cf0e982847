package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/fatih/color"

	"github.com/tinychain-go/tinychain/internal/chain"
	"github.com/tinychain-go/tinychain/vm"
	"github.com/tinychain-go/tinychain/vm/trace"
)

// debug holds the in-progress single-step debugging session started by
// `debug <file>`, grounded on the teacher's single mutable `G.ctx` — here
// scoped to just the stepping session, separate from the chain/node/rpc
// globals in main.go.
var debug struct {
	ctx *vm.ExecutionContext
	bps []vm.Hook
}

var suggestions = []prompt.Suggest{
	{Text: "help", Description: "Show all commands"},
	{Text: "deploy <file.hex>", Description: "Deploy bytecode read from a hex file, sealing a block"},
	{Text: "call <hex calldata>", Description: "Call the last deployed code with call-data, sealing a block"},
	{Text: "debug <file.hex>", Description: "Load bytecode for single-step debugging"},
	{Text: "n", Description: "Single step (debug session)"},
	{Text: "c", Description: "Continue to completion or next breakpoint"},
	{Text: "b pc <n>", Description: "Breakpoint at a program counter"},
	{Text: "b op <OPCODE>", Description: "Breakpoint at an opcode mnemonic"},
	{Text: "p [pc]", Description: "Show disassembly around current/target PC"},
	{Text: "mem [offset size]", Description: "Show memory"},
	{Text: "stack", Description: "Show stack items"},
	{Text: "storage", Description: "Show storage slots"},
	{Text: "peers", Description: "Show connected gossip peer count"},
	{Text: "mine", Description: "Report chain height (blocks seal automatically on deploy/call)"},
	{Text: "save [file]", Description: "Save the chain to --datafile (or the given path)"},
	{Text: "load [file]", Description: "Replace the in-memory chain with one loaded from --datafile (or the given path)"},
}

func completer(in prompt.Document) []prompt.Suggest {
	text := in.TextBeforeCursor()
	if text == "" {
		return nil
	}
	args := strings.Split(text, " ")
	if len(args) == 1 {
		return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
	}
	switch args[0] {
	case "deploy", "debug":
		return fileCompletions(args[len(args)-1], ".hex")
	}
	return nil
}

func showDisasm(code []byte, pc uint64) {
	d := vm.NewDisasm(code)
	line, ok := d.LineAt(pc)
	if !ok {
		color.Red("invalid pc: %d", pc)
		return
	}
	idx := 0
	for i, l := range d.Lines() {
		if l == line {
			idx = i
			break
		}
	}
	beg, end := idx-4, idx+4
	if beg < 0 {
		beg = 0
	}
	if end > d.LineCount() {
		end = d.LineCount()
	}
	for _, l := range d.Lines()[beg:end] {
		if l.Pc == pc {
			color.Blue(l.String())
		} else {
			fmt.Println(l)
		}
	}
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		in = "n"
	}
	args := strings.Split(in, " ")
	argc := len(args)
	cmd := args[0]

	switch cmd {
	case "help":
		for _, s := range suggestions {
			color.HiBlue("%s \t %s", s.Text, color.WhiteString(s.Description))
		}

	case "deploy":
		if argc != 2 {
			color.Red("usage: deploy <file.hex>")
			return
		}
		code, err := readHexFile(args[1])
		if err != nil {
			color.Red(err.Error())
			return
		}
		block, ret, err := G.Chain.Deploy(code, G.GasLimit)
		if block != nil {
			G.last = block
		}
		reportExec(block, ret, err)

	case "call":
		if G.last == nil {
			color.Red("deploy something first")
			return
		}
		var callData []byte
		if argc == 2 {
			var err error
			callData, err = hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
			if err != nil {
				color.Red("bad hex call-data: %s", err.Error())
				return
			}
		}
		code := G.last.Calls[len(G.last.Calls)-1].Code
		block, ret, err := G.Chain.Call(code, callData, G.GasLimit)
		if block != nil {
			G.last = block
		}
		reportExec(block, ret, err)

	case "debug":
		if argc != 2 {
			color.Red("usage: debug <file.hex>")
			return
		}
		code, err := readHexFile(args[1])
		if err != nil {
			color.Red(err.Error())
			return
		}
		debug.ctx = vm.NewExecutionContext(code, nil, 3_000_000)
		for _, bp := range debug.bps {
			debug.ctx.AttachHook(bp)
		}
		color.Green("loaded %s for debugging", args[1])
		showDisasm(debug.ctx.Code, debug.ctx.Pc)

	case "n", "next":
		if !requireDebugSession() {
			return
		}
		if err := debug.ctx.Step(); err != nil {
			color.Red(err.Error())
			fmt.Print(vm.FormatFault(debug.ctx.Code, err.(*vm.Error)))
		}
		showDisasm(debug.ctx.Code, debug.ctx.Pc)

	case "c", "continue", "r", "run":
		if !requireDebugSession() {
			return
		}
		err := debug.ctx.Run(0)
		if err != nil {
			if trace.IsBreakpoint(err) {
				color.Yellow("interrupted: %s", err.Error())
			} else {
				color.Red(err.Error())
				fmt.Print(vm.FormatFault(debug.ctx.Code, err.(*vm.Error)))
			}
		} else {
			color.Green("all done.")
		}
		showDisasm(debug.ctx.Code, debug.ctx.Pc)

	case "b", "bp", "breakpoint":
		if argc == 3 && args[1] == "pc" {
			n, err := parseAnyInt(args[2])
			if err != nil {
				color.Red("bad pc")
				return
			}
			bp := &trace.BpPc{Pc: n}
			debug.bps = append(debug.bps, bp)
			if debug.ctx != nil {
				debug.ctx.AttachHook(bp)
			}
			color.Yellow("bp added: %s", bp.String())
			return
		}
		if argc == 3 && args[1] == "op" {
			op := opcodeFromString(args[2])
			bp := &trace.BpOpCode{OpCode: op}
			debug.bps = append(debug.bps, bp)
			if debug.ctx != nil {
				debug.ctx.AttachHook(bp)
			}
			color.Yellow("bp added: %s", bp.String())
			return
		}
		color.Red("usage: b pc <n> | b op <OPCODE>")

	case "p", "print":
		if !requireDebugSession() {
			return
		}
		pc := debug.ctx.Pc
		if argc == 2 {
			n, err := parseAnyInt(args[1])
			if err != nil {
				color.Red(err.Error())
				return
			}
			pc = n
		}
		showDisasm(debug.ctx.Code, pc)

	case "s", "stack":
		if !requireDebugSession() {
			return
		}
		fmt.Println(toPrettyJSON(debug.ctx.Stack.Items()))

	case "m", "mem", "memory":
		if !requireDebugSession() {
			return
		}
		data := debug.ctx.Memory.Data()
		switch argc {
		case 1:
			fmt.Print(hexDump(data))
		case 3:
			offset, e1 := parseAnyInt(args[1])
			size, e2 := parseAnyInt(args[2])
			if e1 != nil || e2 != nil || offset+size > uint64(len(data)) {
				color.Red("bad range")
				return
			}
			fmt.Print(hexDump(data[offset : offset+size]))
		default:
			color.Red("usage: mem [offset size]")
		}

	case "storage":
		if !requireDebugSession() {
			return
		}
		fmt.Println(toPrettyJSON(debug.ctx.Storage.Snapshot()))

	case "peers":
		color.HiBlue("%d peer(s)", G.Node.PeerCount())

	case "mine":
		color.HiBlue("chain height: %d", G.Chain.Height())

	case "save":
		fn := G.DataFile
		if argc == 2 {
			fn = args[1]
		}
		if err := G.Chain.Save(fn); err != nil {
			color.Red(err.Error())
			return
		}
		color.Green("saved chain to %s", fn)

	case "load":
		fn := G.DataFile
		if argc == 2 {
			fn = args[1]
		}
		loaded, err := chain.Load(fn)
		if err != nil {
			color.Red(err.Error())
			return
		}
		G.Chain = loaded
		G.Node.Chain = loaded
		color.Green("loaded chain from %s (height %d)", fn, G.Chain.Height())

	default:
		color.Red("unknown command")
	}
}

func requireDebugSession() bool {
	if debug.ctx == nil {
		color.Red("'debug <file.hex>' first")
		return false
	}
	return true
}

func reportExec(block *chain.Block, ret []byte, err error) {
	if err != nil && !vm.IsRevert(err) {
		color.Red(err.Error())
		return
	}
	if err != nil {
		color.Yellow("reverted: %s", err.Error())
	} else {
		color.Green("ok, block #%d", block.Number)
	}
	color.White("return data: 0x%x", ret)
}

func readHexFile(fn string) ([]byte, error) {
	raw, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"))
	return hex.DecodeString(s)
}

func hexDump(b []byte) string {
	var sb strings.Builder
	for i := 0; i < len(b); i += 16 {
		end := i + 16
		if end > len(b) {
			end = len(b)
		}
		fmt.Fprintf(&sb, "%08x  % x\n", i, b[i:end])
	}
	return sb.String()
}

func opcodeFromString(s string) vm.OpCode {
	s = strings.ToUpper(s)
	for op := 0; op < 256; op++ {
		if vm.OpCode(op).String() == s {
			return vm.OpCode(op)
		}
	}
	return vm.STOP
}
