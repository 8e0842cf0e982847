package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisasmDecodesPushOperand(t *testing.T) {
	code := concat(push1(0x2a), []byte{byte(STOP)})
	d := NewDisasm(code)
	assert.Equal(t, 2, d.LineCount())
	line, ok := d.LineAt(0)
	assert.True(t, ok)
	assert.Equal(t, PUSH1, line.Op)
	assert.Equal(t, []byte{0x2a}, line.Data)
}

func TestFormatFaultHighlightsPc(t *testing.T) {
	code := []byte{byte(ADD)}
	_, _, err := Execute(code, nil, 1_000_000)
	vmErr := err.(*Error)
	out := FormatFault(code, vmErr)
	assert.Contains(t, out, "stack underflow")
}
