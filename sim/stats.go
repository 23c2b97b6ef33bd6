package sim

import "fmt"

// Stats accumulates steady-state queueing metrics for one simulation run:
// time-weighted occupancy integrals for the pump queue and the whole system,
// plus per-vehicle wait and sojourn samples.
//
// The integrals are advanced only as (now - lastChange) * currentCount
// immediately before the count changes. That is the standard time-weighted,
// Little's-law-consistent accumulation; snapshot sampling would bias the
// averages.
type Stats struct {
	currentInQueue  int
	currentInSystem int

	accumQueueTime  float64
	accumSystemTime float64

	lastChangeQueue  float64
	lastChangeSystem float64

	waitSamples    []float64
	sojournSamples []float64
}

// NewStats returns an empty accumulator with both counters at zero.
func NewStats() *Stats {
	return &Stats{}
}

// InQueue returns the number of vehicles currently waiting for a pump.
func (s *Stats) InQueue() int {
	return s.currentInQueue
}

// InSystem returns the number of vehicles currently at the station.
func (s *Stats) InSystem() int {
	return s.currentInSystem
}

// OnEnqueue records a vehicle joining the pump queue (and the system) at now.
func (s *Stats) OnEnqueue(now float64) {
	s.flushQueue(now)
	s.flushSystem(now)
	s.currentInQueue++
	s.currentInSystem++
}

// OnServiceStart records a vehicle leaving the queue for a pump at now.
func (s *Stats) OnServiceStart(now float64) {
	s.flushQueue(now)
	s.currentInQueue--
}

// OnDepart records a vehicle leaving the station at now.
func (s *Stats) OnDepart(now float64) {
	s.flushSystem(now)
	s.currentInSystem--
}

// RecordWait appends one vehicle's time spent queued for a pump.
func (s *Stats) RecordWait(duration float64) {
	s.waitSamples = append(s.waitSamples, duration)
}

// RecordSojourn appends one vehicle's total time at the station.
func (s *Stats) RecordSojourn(duration float64) {
	s.sojournSamples = append(s.sojournSamples, duration)
}

// Finalize flushes both integrals up to the end of the run without changing
// either counter, so occupancy held between the last change and the stop time
// is not lost. Safe to call more than once.
func (s *Stats) Finalize(now float64) {
	s.flushQueue(now)
	s.flushSystem(now)
}

// MeanQueueLength returns the time-averaged queue occupancy over the horizon.
func (s *Stats) MeanQueueLength(horizon float64) (float64, error) {
	if horizon <= 0 {
		return 0, fmt.Errorf("mean queue length over horizon %v: %w", horizon, ErrInvalidRequest)
	}
	return s.accumQueueTime / horizon, nil
}

// MeanSystemLength returns the time-averaged system occupancy over the horizon.
func (s *Stats) MeanSystemLength(horizon float64) (float64, error) {
	if horizon <= 0 {
		return 0, fmt.Errorf("mean system length over horizon %v: %w", horizon, ErrInvalidRequest)
	}
	return s.accumSystemTime / horizon, nil
}

// MeanWait returns the arithmetic mean of the recorded wait samples.
func (s *Stats) MeanWait() (float64, error) {
	return mean(s.waitSamples, "wait")
}

// MeanSojourn returns the arithmetic mean of the recorded sojourn samples.
func (s *Stats) MeanSojourn() (float64, error) {
	return mean(s.sojournSamples, "sojourn")
}

// WaitCount returns the number of recorded wait samples.
func (s *Stats) WaitCount() int {
	return len(s.waitSamples)
}

// SojournCount returns the number of recorded sojourn samples.
func (s *Stats) SojournCount() int {
	return len(s.sojournSamples)
}

func (s *Stats) flushQueue(now float64) {
	s.accumQueueTime += float64(s.currentInQueue) * (now - s.lastChangeQueue)
	s.lastChangeQueue = now
}

func (s *Stats) flushSystem(now float64) {
	s.accumSystemTime += float64(s.currentInSystem) * (now - s.lastChangeSystem)
	s.lastChangeSystem = now
}

func mean(samples []float64, kind string) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("mean %s: %w", kind, ErrEmptyStatistics)
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples)), nil
}
