package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// pendingEntry is one scheduled firing in the clock's priority heap. The
// insertion sequence breaks ties between entries with the same fire time, so
// same-instant events are processed in scheduling order and a run replays
// identically for a fixed seed.
type pendingEntry struct {
	fireTime float64
	seq      uint64
	event    *Event
}

// pendingHeap implements heap.Interface ordered by (fireTime, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type pendingHeap []*pendingEntry

func (h pendingHeap) Len() int { return len(h) }
func (h pendingHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	return h[i].seq < h[j].seq
}
func (h pendingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pendingHeap) Push(x any) {
	*h = append(*h, x.(*pendingEntry))
}

func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// Clock is the virtual-time scheduler at the center of the simulation. It
// owns the single monotonically non-decreasing time cursor and the heap of
// pending event firings, and it is the only driver of process resumption:
// exactly one continuation runs at a time, selected by RunUntil.
type Clock struct {
	now     float64
	seq     uint64
	pending pendingHeap
}

// NewClock returns a clock at virtual time zero with an empty schedule.
func NewClock() *Clock {
	c := &Clock{pending: make(pendingHeap, 0)}
	heap.Init(&c.pending)
	return c
}

// Now returns the current virtual time.
func (c *Clock) Now() float64 {
	return c.now
}

// Pending returns the number of scheduled firings still in the heap.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// NewEvent returns a pending event bound to this clock. It fires only when
// Trigger is called on it; use Timeout for delay-driven events.
func (c *Clock) NewEvent() *Event {
	return &Event{clock: c}
}

// Timeout creates an event that fires after the given non-negative delay.
func (c *Clock) Timeout(delay float64) *Event {
	if delay < 0 {
		panic(fmt.Sprintf("Timeout: negative delay %v", delay))
	}
	ev := c.NewEvent()
	c.enqueue(ev, delay)
	return ev
}

// enqueue schedules ev to be processed delay time units from now.
func (c *Clock) enqueue(ev *Event, delay float64) {
	entry := &pendingEntry{
		fireTime: c.now + delay,
		seq:      c.seq,
		event:    ev,
	}
	c.seq++
	heap.Push(&c.pending, entry)
}

// RunUntil drives the simulation: it repeatedly pops the earliest pending
// entry, advances the clock to its fire time, and processes the event
// (resuming every subscribed continuation, which may schedule further events).
// The loop is iterative, never recursive, so runs of tens of thousands of
// events are fine.
//
// With a non-nil stop event the run ends, successfully, right after that
// event has been processed; stop is typically an AnyOf composite racing a
// horizon timeout against a domain signal. Draining the heap before stop has
// fired returns ErrEmptySchedule, since a live simulation should always have
// pending work. With a nil stop the clock simply runs the schedule dry and
// returns nil.
func (c *Clock) RunUntil(stop *Event) error {
	for len(c.pending) > 0 {
		entry := heap.Pop(&c.pending).(*pendingEntry)
		c.now = entry.fireTime
		logrus.Debugf("[t=%9.3f] processing event seq=%d", c.now, entry.seq)
		entry.event.process()
		if stop != nil && entry.event == stop {
			return nil
		}
	}
	if stop != nil {
		return fmt.Errorf("run ended at t=%.3f: %w", c.now, ErrEmptySchedule)
	}
	return nil
}
