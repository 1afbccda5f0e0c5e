package analyzer

import "math"

// Primes returns the first n primes in ascending order
func Primes(n int) []int64 {
	if n <= 0 {
		return nil
	}

	limit := primeBound(n)
	for {
		if primes := sieve(limit, n); len(primes) == n {
			return primes
		}
		limit *= 2
	}
}

// primeBound is an upper bound on the n-th prime (Rosser's theorem for n >= 6)
func primeBound(n int) int {
	if n < 6 {
		return 15
	}
	x := float64(n)
	return int(x*(math.Log(x)+math.Log(math.Log(x)))) + 1
}

// sieve collects at most n primes not greater than limit
func sieve(limit, n int) []int64 {
	composite := make([]bool, limit+1)
	primes := make([]int64, 0, n)
	for i := 2; i <= limit && len(primes) < n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, int64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}
