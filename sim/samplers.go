package sim

import "math/rand"

// Samplers wrap the raw RNG streams behind a Sample() float64 contract so the
// scenario logic never touches distribution parameters directly. All samplers
// return non-negative values.

// ExpSampler draws exponentially-distributed durations with the given mean,
// the interarrival process of Poisson vehicle arrivals.
type ExpSampler struct {
	mean float64
	rng  *rand.Rand
}

// NewExpSampler creates an exponential sampler with the given positive mean.
func NewExpSampler(rng *rand.Rand, mean float64) *ExpSampler {
	return &ExpSampler{mean: mean, rng: rng}
}

// Sample returns the next exponential draw.
func (s *ExpSampler) Sample() float64 {
	return s.rng.ExpFloat64() * s.mean
}

// ClampedNormalSampler draws normally-distributed durations rejected while
// negative, up to maxResamples attempts, then clamped to zero. The bound
// keeps a misconfigured distribution (mean far below zero) from looping
// forever.
type ClampedNormalSampler struct {
	mean         float64
	stddev       float64
	maxResamples int
	rng          *rand.Rand
}

// NewClampedNormalSampler creates a clamped normal sampler.
func NewClampedNormalSampler(rng *rand.Rand, mean, stddev float64, maxResamples int) *ClampedNormalSampler {
	if maxResamples < 1 {
		maxResamples = 1
	}
	return &ClampedNormalSampler{mean: mean, stddev: stddev, maxResamples: maxResamples, rng: rng}
}

// Sample returns the next non-negative normal draw.
func (s *ClampedNormalSampler) Sample() float64 {
	for i := 0; i < s.maxResamples; i++ {
		v := s.rng.NormFloat64()*s.stddev + s.mean
		if v >= 0 {
			return v
		}
	}
	return 0
}

// UniformIntSampler draws integers uniformly from [min, max], used for the
// initial fuel level of an arriving vehicle.
type UniformIntSampler struct {
	min int
	max int
	rng *rand.Rand
}

// NewUniformIntSampler creates a uniform integer sampler over [min, max].
func NewUniformIntSampler(rng *rand.Rand, min, max int) *UniformIntSampler {
	if max < min {
		min, max = max, min
	}
	return &UniformIntSampler{min: min, max: max, rng: rng}
}

// Sample returns the next uniform draw as a float64.
func (s *UniformIntSampler) Sample() float64 {
	return float64(s.min + s.rng.Intn(s.max-s.min+1))
}
