package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFingerTableOffsets(t *testing.T) {
	const m = 4
	ft := newFingerTable(m, 0)
	require.Equal(t, m, ft.len())

	// start_i = (0 + 2^i) mod 16
	expected := []uint64{1, 2, 4, 8}
	for i, want := range expected {
		snap := ft.get(i)
		assert.Equal(t, want, snap.Start, "finger %d start", i)
		assert.Nil(t, snap.Node)
	}
}

func TestFingerTableOffsetsWrap(t *testing.T) {
	const m = 3
	ft := newFingerTable(m, 6) // keyspace 8
	expected := []uint64{7, 0, 2}
	for i, want := range expected {
		assert.Equal(t, want, ft.get(i).Start)
	}
}

func TestFingerTableSuccessorAndClear(t *testing.T) {
	ft := newFingerTable(4, 0)
	self := &fakeRemoteNode{key: 0, addr: "self"}
	peer := &fakeRemoteNode{key: 5, addr: "peer"}

	ft.setSuccessor(peer)
	assert.Equal(t, peer, ft.successor().Node)

	ft.clear(0, self)
	assert.Equal(t, self, ft.successor().Node, "clearing entry 0 must fall back to self, never nil")

	ft.set(2, peer)
	assert.Equal(t, peer, ft.get(2).Node)
	ft.clear(2, self)
	assert.Nil(t, ft.get(2).Node, "clearing a non-successor entry leaves it nil")
}

func TestFingerTableForwardReverseOrder(t *testing.T) {
	ft := newFingerTable(4, 0)
	fwd := ft.forward()
	rev := ft.reverse()
	require.Len(t, fwd, 4)
	require.Len(t, rev, 4)
	for i := range fwd {
		assert.Equal(t, fwd[i].Index, rev[len(rev)-1-i].Index)
		assert.Equal(t, fwd[i].Start, rev[len(rev)-1-i].Start)
	}
	assert.Equal(t, 0, fwd[0].Index)
	assert.Equal(t, 3, rev[0].Index)
}

func TestFingerTableRandomIndexInBounds(t *testing.T) {
	ft := newFingerTable(6, 0)
	for i := 0; i < 50; i++ {
		idx := ft.randomIndex()
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, ft.len())
	}
}
