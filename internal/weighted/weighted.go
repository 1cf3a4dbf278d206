// Package weighted implements weighted random selection over an ordered
// candidate list using the cumulative-weights method. The pure Pick function
// is deterministic for a fixed draw, which is what makes the algorithm unit
// testable; Picker wraps it with a guarded random source for production use.
package weighted

import (
	"math/rand"
	"sync"
	"time"
)

// Candidate pairs a value with its selection weight.
type Candidate[T any] struct {
	Value  T
	Weight int
}

// Total sums the weights of all candidates. Negative weights are counted
// as zero so a corrupt row can never shrink another candidate's range.
func Total[T any](candidates []Candidate[T]) int {
	total := 0
	for _, c := range candidates {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	return total
}

// Pick returns the candidate whose cumulative weight range [cum_{i-1}, cum_i)
// contains draw, along with true. It returns the zero value and false when
// the list is empty, the total weight is zero, or draw falls outside
// [0, total).
//
// Example: weights [50, 30, 20] give ranges A=[0,50), B=[50,80), C=[80,100);
// draw=65 selects B. The probability of candidate i under a uniform draw is
// exactly weight_i / total.
func Pick[T any](candidates []Candidate[T], draw float64) (T, bool) {
	var zero T
	if len(candidates) == 0 {
		return zero, false
	}
	total := Total(candidates)
	if total == 0 || draw < 0 || draw >= float64(total) {
		return zero, false
	}
	cumulative := 0
	for _, c := range candidates {
		if c.Weight > 0 {
			cumulative += c.Weight
		}
		if draw < float64(cumulative) {
			return c.Value, true
		}
	}
	// Unreachable given draw < total; kept so the compiler sees every path.
	return candidates[len(candidates)-1].Value, true
}

// Picker performs weighted random selection with its own random source.
// The zero value is not usable; construct it with NewPicker. Safe for
// concurrent use.
type Picker struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewPicker returns a Picker seeded from the current time.
func NewPicker() *Picker {
	return &Picker{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededPicker returns a Picker with a fixed seed, for reproducible runs.
func NewSeededPicker(seed int64) *Picker {
	return &Picker{rand: rand.New(rand.NewSource(seed))}
}

// Select draws a uniform random number in [0, total) and returns the
// candidate owning that point. It returns false for an empty list or a
// zero total weight; it never errors.
func Select[T any](p *Picker, candidates []Candidate[T]) (T, bool) {
	var zero T
	total := Total(candidates)
	if len(candidates) == 0 || total == 0 {
		return zero, false
	}
	p.mu.Lock()
	draw := p.rand.Float64() * float64(total)
	p.mu.Unlock()
	return Pick(candidates, draw)
}
