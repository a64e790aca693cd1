package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random draws that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Distinct returns count distinct random integers drawn uniformly
	// from [min, max] inclusive
	Distinct(min, max, count int) []int

	// Chance returns true with the given probability in [0, 1]
	Chance(probability float64) bool
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Distinct returns count distinct random integers from [min, max] inclusive
func (r *CryptoRandom) Distinct(min, max, count int) []int {
	return DistinctWith(r, min, max, count)
}

// Chance returns true with the given probability
func (r *CryptoRandom) Chance(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	const precision = 1 << 30
	return r.Intn(precision) < int(probability*float64(precision))
}

// DistinctWith implements a distinct in-range sample on top of any Intn
// source via a Fisher-Yates shuffle, so every subset and ordering is equally
// likely. Returns nil if the range cannot supply count distinct values.
// Shared so mocks can reuse it.
func DistinctWith(r Random, min, max, count int) []int {
	size := max - min + 1
	if min > max || count <= 0 || count > size {
		return nil
	}

	numbers := make([]int, size)
	for i := range numbers {
		numbers[i] = min + i
	}
	for i := size - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		numbers[i], numbers[j] = numbers[j], numbers[i]
	}

	return numbers[:count]
}
