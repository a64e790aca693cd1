package mocks

import (
	"github.com/arcadely/arcade/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// DistinctResults is a queue of results to return from Distinct
	DistinctResults [][]int
	distinctIndex   int

	// ChanceResults is a queue of results to return from Chance
	ChanceResults []bool
	chanceIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Distinct returns the next queued result. If none is queued it falls back to
// a deterministic sample driven by the Intn queue, so tests may script either.
func (r *MockRandom) Distinct(min, max, count int) []int {
	if r.distinctIndex >= len(r.DistinctResults) {
		return random.DistinctWith(r, min, max, count)
	}
	result := r.DistinctResults[r.distinctIndex]
	r.distinctIndex++
	return result
}

// Chance returns the next queued result, or false if none remaining
func (r *MockRandom) Chance(probability float64) bool {
	if r.chanceIndex >= len(r.ChanceResults) {
		return false
	}
	result := r.ChanceResults[r.chanceIndex]
	r.chanceIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueDistinct adds values to the Distinct result queue
func (r *MockRandom) QueueDistinct(values ...[]int) {
	r.DistinctResults = append(r.DistinctResults, values...)
}

// QueueChance adds values to the Chance result queue
func (r *MockRandom) QueueChance(values ...bool) {
	r.ChanceResults = append(r.ChanceResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.DistinctResults = nil
	r.distinctIndex = 0
	r.ChanceResults = nil
	r.chanceIndex = 0
}
