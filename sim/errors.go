package sim

import "errors"

// Sentinel errors returned by the simulation kernel. All of them indicate a
// contract violation by the caller rather than a recoverable runtime
// condition, so they are surfaced immediately and never retried internally.
var (
	// ErrEmptySchedule is returned by Clock.RunUntil when the pending-event
	// heap drains before the stop event has fired. It usually means a
	// generator process forgot to reschedule itself.
	ErrEmptySchedule = errors.New("sim: no pending events before stop condition fired")

	// ErrCapacityExceeded is returned by Container.Put when the increment
	// would overflow the container's capacity. Put is strict: the caller is
	// expected to compute the exact headroom first.
	ErrCapacityExceeded = errors.New("sim: put would exceed container capacity")

	// ErrEmptyStatistics is returned by the mean queries on Stats when no
	// sample has been recorded yet.
	ErrEmptyStatistics = errors.New("sim: no samples recorded")

	// ErrInvalidRequest is returned for non-positive get/put amounts and
	// for releasing a ticket that is not currently held.
	ErrInvalidRequest = errors.New("sim: invalid request")
)
