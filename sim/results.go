package sim

import "fmt"

// Results carries the steady-state metrics of one completed run, plus how
// and when the run ended. Formatting beyond Print is the CLI's concern.
type Results struct {
	MeanQueueLength  float64 // time-averaged vehicles waiting for a pump
	MeanSystemLength float64 // time-averaged vehicles at the station
	MeanWait         float64 // mean pump-queue wait (seconds)
	MeanSojourn      float64 // mean total time at the station (seconds)

	FinalTime float64 // virtual time at which the run stopped
	Depleted  bool    // true if the depletion signal ended the run

	Completed    int // vehicles that finished refueling
	Rejected     int // vehicles turned away
	PartialFills int // vehicles granted less than they asked for
}

// Print displays the run's metrics at the end of the simulation.
func (r *Results) Print() {
	if r.Depleted {
		fmt.Printf("\nSimulation results after %.1f seconds (fuel depleted):\n", r.FinalTime)
	} else {
		fmt.Printf("\nSimulation results after %.1f seconds:\n", r.FinalTime)
	}
	fmt.Printf("Average vehicles in queue  : %.2f\n", r.MeanQueueLength)
	fmt.Printf("Average vehicles in system : %.2f\n", r.MeanSystemLength)
	fmt.Printf("Average time in queue      : %.2f seconds\n", r.MeanWait)
	fmt.Printf("Average time in system     : %.2f seconds\n", r.MeanSojourn)
	fmt.Printf("Completed / rejected       : %d / %d\n", r.Completed, r.Rejected)
	if r.PartialFills > 0 {
		fmt.Printf("Partial fills              : %d\n", r.PartialFills)
	}
}
