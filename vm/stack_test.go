package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack()
	assert.NoError(t, s.Push(WordFromUint64(1)))
	assert.NoError(t, s.Push(WordFromUint64(2)))
	top, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), top.Uint64())
}

func TestStackUnderflowOnEmptyPop(t *testing.T) {
	s := NewStack()
	_, err := s.Pop()
	assert.Error(t, err)
	assert.Equal(t, StackUnderflow, err.(*Error).Kind)
}

func TestStackOverflowAtCapacity(t *testing.T) {
	s := NewStack()
	for i := 0; i < StackCapacity; i++ {
		assert.NoError(t, s.Push(WordFromUint64(uint64(i))))
	}
	err := s.Push(WordFromUint64(0))
	assert.Error(t, err)
	assert.Equal(t, StackOverflow, err.(*Error).Kind)
}

func TestStackDupAndSwap(t *testing.T) {
	s := NewStack()
	_ = s.Push(WordFromUint64(1))
	_ = s.Push(WordFromUint64(2))
	assert.NoError(t, s.Dup(2))
	top, _ := s.Peek(0)
	assert.Equal(t, uint64(1), top.Uint64())

	assert.NoError(t, s.Swap(1))
	top, _ = s.Peek(0)
	assert.Equal(t, uint64(2), top.Uint64())
}
