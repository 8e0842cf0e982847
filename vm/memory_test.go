package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGrowsInWords(t *testing.T) {
	m := NewMemory()
	m.Set32(0, WordFromUint64(1))
	assert.Equal(t, uint64(32), m.Len())
}

func TestMemoryStore32LoadRoundTrip(t *testing.T) {
	m := NewMemory()
	m.Set32(64, WordFromUint64(0x2a))
	assert.Equal(t, uint64(0x2a), m.Load32(64).Uint64())
}

func TestMemoryZeroFillsOnGrow(t *testing.T) {
	m := NewMemory()
	m.Set32(0, WordFromUint64(0xff))
	got := m.GetCopy(32, 32)
	for _, b := range got {
		assert.Equal(t, byte(0), b)
	}
}

func TestMemorySetPadsShortValue(t *testing.T) {
	m := NewMemory()
	m.Set(0, 4, []byte{0xaa})
	got := m.GetCopy(0, 4)
	assert.Equal(t, []byte{0xaa, 0, 0, 0}, got)
}
