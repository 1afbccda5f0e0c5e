package hashfn

import "math/big"

// fnvMultiplier is the 32-bit FNV offset basis, used here as a multiplier.
const fnvMultiplier = 0x811C9DC5

// polynomial returns h = h*multiplier + ord(ch) seeded with seed. A positive
// limit stops after that many characters.
func polynomial(seed, multiplier int64, limit int) func(string) *big.Int {
	m := big.NewInt(multiplier)
	return func(key string) *big.Int {
		h := big.NewInt(seed)
		c := new(big.Int)
		n := 0
		for _, r := range key {
			if limit > 0 && n == limit {
				break
			}
			h.Mul(h, m)
			h.Add(h, c.SetInt64(int64(r)))
			n++
		}
		return h
	}
}

func djb2(key string) *big.Int {
	h := big.NewInt(5381)
	t := new(big.Int)
	c := new(big.Int)
	for _, r := range key {
		t.Lsh(h, 5)
		h.Add(t, h)
		h.Add(h, c.SetInt64(int64(r)))
	}
	return h
}

func sdbm(key string) *big.Int {
	h := new(big.Int)
	lo := new(big.Int)
	hi := new(big.Int)
	c := new(big.Int)
	for _, r := range key {
		lo.Lsh(h, 6)
		hi.Lsh(h, 16)
		lo.Add(lo, hi)
		lo.Sub(lo, h)
		h.Add(lo, c.SetInt64(int64(r)))
	}
	return h
}

// fnv1aVariant multiplies before xoring, which is not the order of standard FNV-1a.
func fnv1aVariant(key string) *big.Int {
	h := new(big.Int)
	m := big.NewInt(fnvMultiplier)
	c := new(big.Int)
	for _, r := range key {
		h.Mul(h, m)
		h.Xor(h, c.SetInt64(int64(r)))
	}
	return h
}

const adlerModulus = 65521

func adler32(key string) *big.Int {
	var h1, h2 uint64
	for _, r := range key {
		h1 = (h1 + uint64(r)) % adlerModulus
		h2 = (h2 + h1) % adlerModulus
	}
	return new(big.Int).SetUint64(h2<<16 | h1)
}
