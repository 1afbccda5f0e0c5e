package hashfn

import (
	"hash/fnv"
	"math/big"
)

// The functions in this file operate on UTF-8 bytes with 64-bit wraparound.

// fixedPolynomial returns h = h*multiplier + (byte - offset). Bytes below
// offset contribute a negative term that wraps.
func fixedPolynomial(multiplier, offset uint64) func(string) *big.Int {
	return func(key string) *big.Int {
		var h uint64
		for i := 0; i < len(key); i++ {
			h = h*multiplier + uint64(int64(key[i])-int64(offset))
		}
		return new(big.Int).SetUint64(h)
	}
}

func rshash(key string) *big.Int {
	var h uint64
	for i := 0; i < len(key); i++ {
		h = uint64(key[i]) + (h << 13) + (h << 9) + (h << 4) - h
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return new(big.Int).SetUint64(h)
}

// baseline stands in for a host-provided string hash. Any stable hash would
// do; values are not comparable with other implementations.
func baseline(key string) *big.Int {
	h := fnv.New64a()
	h.Write([]byte(key))
	return new(big.Int).SetUint64(h.Sum64())
}
