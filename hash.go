package chord

import "github.com/spaolacci/murmur3"

// KeyHash is the external contract the core consumes to map an
// application key to an m-bit ring identifier. The core never inspects
// the algorithm behind it, only that it's deterministic.
type KeyHash interface {
	Hash(key string, m uint) uint64
}

// murmurKeyHash is the default KeyHash: the low m bits of the first
// 64-bit half of a 128-bit murmur3 hash.
type murmurKeyHash struct{}

// NewKeyHash returns the default murmur3-backed KeyHash implementation.
func NewKeyHash() KeyHash {
	return murmurKeyHash{}
}

func (murmurKeyHash) Hash(key string, m uint) uint64 {
	h1, _ := murmur3.Sum128([]byte(key))
	return h1 & keyspaceMask(m)
}

func keyspaceMask(m uint) uint64 {
	if m >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << m) - 1
}
