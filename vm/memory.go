package vm

// Memory is a conceptually infinite, zero-initialized byte buffer accessed
// in 32-byte words, grounded on the teacher's aj3423-edb/memory.go
// (Set/Set32/Resize/GetPtr), adapted so every read first grows the backing
// store per spec.md §4.3 instead of the teacher's read-only GetPtr, which
// assumes the caller already sized the buffer during gas calculation (a step
// this core skips — spec.md §4.3 "no additional gas for memory expansion").
type Memory struct {
	store []byte
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Len() uint64 { return uint64(len(m.store)) }

// Data returns the backing slice for read-only inspection (REPL `mem`
// command, tracer snapshots). Callers must not retain it across a mutation.
func (m *Memory) Data() []byte { return m.store }

// ensureSize extends the buffer so its length is at least n, rounded up to
// the next 32-byte word, zero-filling the new tail — spec.md §4.3.
func (m *Memory) ensureSize(n uint64) {
	if uint64(len(m.store)) >= n {
		return
	}
	words := (n + 31) / 32
	target := words * 32
	grown := make([]byte, target)
	copy(grown, m.store)
	m.store = grown
}

// Set writes value into [offset, offset+size), zero-padding value if it is
// shorter than size — spec.md §4.3's copy_from.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.ensureSize(offset + size)
	n := copy(m.store[offset:offset+size], value)
	for i := n; i < int(size); i++ {
		m.store[offset+uint64(i)] = 0
	}
}

// Set32 writes the big-endian encoding of val to exactly 32 bytes at offset.
func (m *Memory) Set32(offset uint64, val Word256) {
	m.ensureSize(offset + 32)
	b := val.ToBigEndian()
	copy(m.store[offset:offset+32], b[:])
}

// Load32 returns the Word256 at byte offset, big-endian, growing memory as
// needed.
func (m *Memory) Load32(offset uint64) Word256 {
	m.ensureSize(offset + 32)
	return WordFromBigEndian(m.store[offset : offset+32])
}

// GetCopy returns a freshly allocated copy of [offset, offset+size), growing
// memory as needed. Used for RETURN/REVERT, whose output must outlive the
// execution context.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	m.ensureSize(offset + size)
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}
