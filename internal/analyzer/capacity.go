package analyzer

import (
	"math/big"
)

// CapacityKind selects how a digest is reduced into a bucket index
type CapacityKind int

const (
	// CapacityModulo reduces with digest % size
	CapacityModulo CapacityKind = iota
	// CapacityPowerOfTwo reduces with digest & (size-1)
	CapacityPowerOfTwo
	// CapacityDegenerate is a non-positive size; every digest lands in bucket 0
	CapacityDegenerate
)

// String returns the kind name used in reports
func (k CapacityKind) String() string {
	switch k {
	case CapacityModulo:
		return "modulo"
	case CapacityPowerOfTwo:
		return "power-of-two"
	case CapacityDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Capacity is a candidate table size with its reduction kind fixed at construction
type Capacity struct {
	Size int64
	Kind CapacityKind

	// mask is size-1 for power-of-two capacities, modulus is size otherwise
	mask    *big.Int
	modulus *big.Int
}

// IsPowerOfTwo reports whether size satisfies size & (size-1) == 0 for a positive size
func IsPowerOfTwo(size int64) bool {
	return size > 0 && size&(size-1) == 0
}

// NewCapacity classifies size and precomputes its reduction operand
func NewCapacity(size int64) Capacity {
	switch {
	case size <= 0:
		return Capacity{Size: size, Kind: CapacityDegenerate}
	case IsPowerOfTwo(size):
		return Capacity{Size: size, Kind: CapacityPowerOfTwo, mask: big.NewInt(size - 1)}
	default:
		return Capacity{Size: size, Kind: CapacityModulo, modulus: big.NewInt(size)}
	}
}

// NewCapacities classifies every size, preserving order
func NewCapacities(sizes []int64) []Capacity {
	out := make([]Capacity, len(sizes))
	for i, size := range sizes {
		out[i] = NewCapacity(size)
	}
	return out
}

// Bucket reduces a non-negative digest into [0, Size)
func (c Capacity) Bucket(digest *big.Int) uint64 {
	switch c.Kind {
	case CapacityPowerOfTwo:
		return new(big.Int).And(digest, c.mask).Uint64()
	case CapacityModulo:
		return new(big.Int).Mod(digest, c.modulus).Uint64()
	default:
		return 0
	}
}

// PowersOfTwo returns 2^minPower..2^maxPower inclusive
func PowersOfTwo(minPower, maxPower int) []int64 {
	if minPower < 0 || maxPower > 62 || minPower > maxPower {
		return nil
	}
	out := make([]int64, 0, maxPower-minPower+1)
	for p := minPower; p <= maxPower; p++ {
		out = append(out, int64(1)<<uint(p))
	}
	return out
}

// CandidateCapacities is the prime prefix followed by the powers of two
func CandidateCapacities(primes []int64, minPower, maxPower int) []int64 {
	powers := PowersOfTwo(minPower, maxPower)
	out := make([]int64, 0, len(primes)+len(powers))
	out = append(out, primes...)
	return append(out, powers...)
}
