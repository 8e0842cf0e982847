package p2p

import (
	"sync"

	"github.com/google/uuid"

	mapset "github.com/deckarep/golang-set/v2"
)

// seenMessageLimit caps how many message IDs are remembered for
// dedup — an unbounded set would leak memory on a long-running gossip
// node, grounded on the pack's own bounded known-transaction sets
// (ProbeChain/N42).
const seenMessageLimit = 4096

// seenSet dedups gossip messages by ID so a node doesn't re-relay (or
// re-deliver to OnBlock) the same block it's already seen, using
// deckarep/golang-set/v2 the way ProbeChain/N42 track known transactions.
type seenSet struct {
	mu   sync.Mutex
	ids  mapset.Set[uuid.UUID]
	order []uuid.UUID
}

func newSeenSet() *seenSet {
	return &seenSet{ids: mapset.NewSet[uuid.UUID]()}
}

// seenBefore records id and reports whether it had already been seen.
func (s *seenSet) seenBefore(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids.Contains(id) {
		return true
	}
	s.ids.Add(id)
	s.order = append(s.order, id)
	if len(s.order) > seenMessageLimit {
		oldest := s.order[0]
		s.order = s.order[1:]
		s.ids.Remove(oldest)
	}
	return false
}
