package random

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// Seeded is a deterministic mulberry32 generator.
// The same seed yields the same sequence on every platform and run, so it is
// safe to derive persisted data from it. Changing the algorithm changes every
// value ever derived from it.
type Seeded struct {
	state uint32
}

// NewSeeded creates a Seeded generator starting from seed
func NewSeeded(seed uint32) *Seeded {
	return &Seeded{state: seed}
}

// Float64 returns the next value of the sequence in [0, 1)
func (r *Seeded) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns the next value of the sequence scaled to [0, n)
func (r *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}
