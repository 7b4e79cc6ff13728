package chord

import (
	"math/rand"
	"sync"
)

// fingerEntry caches a remote peer handle for a computed start offset.
// Entry 0 is the successor pointer; it must never be nil after join
// completes.
type fingerEntry struct {
	start uint64 // (nodeKey + 2^i) mod 2^m, immutable
	node  RemoteNode
}

// fingerSnapshot is a point-in-time copy of a finger entry, safe to
// hand to callers without holding the table's lock.
type fingerSnapshot struct {
	Index int
	Start uint64
	Node  RemoteNode
}

// fingerTable is the fixed-size, ordered collection of m finger
// entries a Node keeps for routing. Entries are mutated by the
// maintainer and read by request routing; all access goes through the
// table's lock, which is held only for the instant of a single
// pointer read or write.
type fingerTable struct {
	mu      sync.Mutex
	entries []*fingerEntry
}

// newFingerTable builds the m fixed start offsets for nodeKey. Entry
// node fields start nil; the caller populates them during join.
func newFingerTable(m uint, nodeKey uint64) *fingerTable {
	entries := make([]*fingerEntry, m)
	mod := uint64(1) << m
	for i := range entries {
		start := (nodeKey + (uint64(1) << uint(i))) % mod
		entries[i] = &fingerEntry{start: start}
	}
	return &fingerTable{entries: entries}
}

func (ft *fingerTable) len() int {
	return len(ft.entries)
}

// successor returns a snapshot of entry 0.
func (ft *fingerTable) successor() fingerSnapshot {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return fingerSnapshot{Index: 0, Start: ft.entries[0].start, Node: ft.entries[0].node}
}

func (ft *fingerTable) setSuccessor(r RemoteNode) {
	ft.mu.Lock()
	ft.entries[0].node = r
	ft.mu.Unlock()
}

func (ft *fingerTable) get(i int) fingerSnapshot {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return fingerSnapshot{Index: i, Start: ft.entries[i].start, Node: ft.entries[i].node}
}

func (ft *fingerTable) set(i int, r RemoteNode) {
	ft.mu.Lock()
	ft.entries[i].node = r
	ft.mu.Unlock()
}

// clear resets entry i, or resets it to self if it is the successor
// pointer (entry 0 must never go nil).
func (ft *fingerTable) clear(i int, self RemoteNode) {
	ft.mu.Lock()
	if i == 0 {
		ft.entries[0].node = self
	} else {
		ft.entries[i].node = nil
	}
	ft.mu.Unlock()
}

// forward returns a snapshot of entries 0..m-1.
func (ft *fingerTable) forward() []fingerSnapshot {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	out := make([]fingerSnapshot, len(ft.entries))
	for i, e := range ft.entries {
		out[i] = fingerSnapshot{Index: i, Start: e.start, Node: e.node}
	}
	return out
}

// reverse returns a snapshot of entries m-1..0, used by
// closest-preceding-finger routing.
func (ft *fingerTable) reverse() []fingerSnapshot {
	fwd := ft.forward()
	out := make([]fingerSnapshot, len(fwd))
	for i, e := range fwd {
		out[len(fwd)-1-i] = e
	}
	return out
}

// randomIndex returns a finger index uniformly at random.
func (ft *fingerTable) randomIndex() int {
	return rand.Intn(len(ft.entries))
}
