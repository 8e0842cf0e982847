package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinychain-go/tinychain/vm"
)

func TestBpPcHaltsAtTargetPc(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 1, byte(vm.PUSH1), 2, byte(vm.ADD), byte(vm.STOP)}
	ctx, err := vm.ExecuteWithHooks(code, nil, 1_000_000, &BpPc{Pc: 4})
	assert.True(t, IsBreakpoint(err))
	assert.Equal(t, uint64(4), ctx.Pc)
}

func TestBpOpCodeHaltsOnMatch(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 1, byte(vm.PUSH1), 2, byte(vm.ADD), byte(vm.STOP)}
	_, err := vm.ExecuteWithHooks(code, nil, 1_000_000, &BpOpCode{OpCode: vm.ADD})
	assert.True(t, IsBreakpoint(err))
}

func TestEvmLogWritesOneLinePerStep(t *testing.T) {
	var buf bytes.Buffer
	code := []byte{byte(vm.PUSH1), 1, byte(vm.STOP)}
	_, err := vm.ExecuteWithHooks(code, nil, 1_000_000, &EvmLog{W: &buf})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "PUSH1")
	assert.Contains(t, buf.String(), "STOP")
}
