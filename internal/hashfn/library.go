package hashfn

import (
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
	"github.com/zeebo/blake3"
)

// highwayKey is fixed so that highway64 digests are reproducible.
var highwayKey = make([]byte, 32)

func murmur3Sum(key string) *big.Int {
	return new(big.Int).SetUint64(murmur3.Sum64([]byte(key)))
}

func metroSum(key string) *big.Int {
	h := metrohash.NewMetroHash64()
	h.Write([]byte(key))
	return new(big.Int).SetUint64(h.Sum64())
}

func xxhashSum(key string) *big.Int {
	return new(big.Int).SetUint64(xxhash.Sum64String(key))
}

func highwaySum(key string) *big.Int {
	return new(big.Int).SetUint64(highwayhash.Sum64([]byte(key), highwayKey))
}

func blake3Sum(key string) *big.Int {
	sum := blake3.Sum256([]byte(key))
	return new(big.Int).SetBytes(sum[:])
}
