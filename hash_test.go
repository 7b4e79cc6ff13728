package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyspaceMask(t *testing.T) {
	tests := []struct {
		name     string
		m        uint
		expected uint64
	}{
		{"m=1", 1, 1},
		{"m=8", 8, 255},
		{"m=16", 16, 65535},
		{"m=64 saturates", 64, ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, keyspaceMask(tt.m))
		})
	}
}

func TestMurmurKeyHashDeterministicAndBounded(t *testing.T) {
	h := NewKeyHash()

	const m = 10
	id1 := h.Hash("alpha", m)
	id2 := h.Hash("alpha", m)
	assert.Equal(t, id1, id2, "same key must hash identically")
	assert.Less(t, id1, uint64(1)<<m, "hash must fit the requested keyspace")

	id3 := h.Hash("beta", m)
	assert.NotEqual(t, id1, id3, "distinct keys should usually hash differently")
}
