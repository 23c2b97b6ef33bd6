// Package sim provides a discrete-event simulation of a multi-pump
// refueling station drawing from a shared, depletable tank.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - clock.go: the virtual-time scheduler and its pending-event heap
//   - event.go: the event lifecycle (pending → triggered → processed) and
//     the AnyOf composite used for run termination
//   - process.go: cooperative processes that suspend at Hold/Wait points
//
// # Architecture
//
// The kernel is strictly single-threaded: one continuation runs at a time,
// selected by the clock, and events scheduled for the same virtual instant
// are processed in scheduling order, so a run replays identically for a
// fixed seed. Shared state needs no locking; the discipline is purely
// ordering-based.
//
// Two resource primitives arbitrate contention:
//   - Resource: a capacity-limited FIFO server (a pump)
//   - Container: a depletable quantity store with blocking, all-or-nothing
//     withdrawals (the station tank)
//
// station.go wires them into the scenario: a generator process spawns
// vehicle processes with exponential interarrivals; vehicles pick the
// least-loaded pump, draw fuel subject to the reserve-threshold policy, and
// feed the time-weighted Stats accumulator. The tank-truck variant adds a
// control process that refills the tank when it dips below threshold.
package sim
