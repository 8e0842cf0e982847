package chain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinychain-go/tinychain/vm"
)

func TestGenesisIsSealed(t *testing.T) {
	c := Genesis()
	assert.True(t, c.Head().Verify())
	assert.Equal(t, uint64(0), c.Height())
}

func TestDeploySealsNewBlock(t *testing.T) {
	c := Genesis()
	code := []byte{byte(vm.PUSH1), 1, byte(vm.STOP)}
	block, _, err := c.Deploy(code, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), block.Number)
	assert.True(t, block.Verify())
	assert.Equal(t, block.Hash, c.Head().Hash)
}

func TestRevertedCallStillSealsABlock(t *testing.T) {
	c := Genesis()
	code := []byte{byte(vm.PUSH1), 0, byte(vm.PUSH1), 0, byte(vm.REVERT)}
	before := c.Height()
	_, _, err := c.Call(code, nil, 0)
	assert.True(t, vm.IsRevert(err))
	assert.Equal(t, before+1, c.Height())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	c := Genesis()
	code := []byte{byte(vm.PUSH1), 1, byte(vm.STOP)}
	_, _, err := c.Deploy(code, 0)
	assert.NoError(t, err)

	fn := filepath.Join(t.TempDir(), "chain.json")
	assert.NoError(t, c.Save(fn))

	loaded, err := Load(fn)
	assert.NoError(t, err)
	assert.Equal(t, c.Height(), loaded.Height())
	assert.Equal(t, c.Head().Hash, loaded.Head().Hash)
	assert.True(t, loaded.Head().Verify())
}
