package analyzer

import "math"

// ExpectedCollisionRate is the collision rate an ideal uniform hash would
// produce for n keys in p buckets: (n - p*(1 - (1-1/p)^n)) / n.
func ExpectedCollisionRate(n int, p int64) float64 {
	if n <= 0 {
		return 0
	}
	if p <= 1 {
		return float64(n-1) / float64(n)
	}

	buckets := float64(p)
	// log1p keeps (1-1/p)^n accurate for large p
	empty := math.Exp(float64(n) * math.Log1p(-1/buckets))
	used := buckets * (1 - empty)
	rate := (float64(n) - used) / float64(n)
	if rate < 0 {
		return 0
	}
	return rate
}
