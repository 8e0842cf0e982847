package p2p

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeenSetDedupsById(t *testing.T) {
	s := newSeenSet()
	id := uuid.New()
	assert.False(t, s.seenBefore(id))
	assert.True(t, s.seenBefore(id))
}

func TestNewNodeHasNoPeers(t *testing.T) {
	n := NewNode(nil)
	assert.Equal(t, 0, n.PeerCount())
}
