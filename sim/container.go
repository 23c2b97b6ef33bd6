package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// levelTolerance absorbs float64 rounding when a put tops the container up to
// exactly its capacity.
const levelTolerance = 1e-9

// getRequest is one blocked withdrawal, waiting for the level to cover its
// full amount.
type getRequest struct {
	amount  float64
	granted *Event
}

// Container is a depletable, refillable shared quantity: the station's fuel
// tank. Withdrawals block while the level is insufficient and are granted
// strictly in arrival order, each in full or not at all, so cumulative grants
// can never overdraw the level. Deposits are non-blocking and strict: a put
// that would overflow the capacity is an error, never a silent clamp.
type Container struct {
	clock    *Clock
	capacity float64
	level    float64
	waiters  []*getRequest
}

// NewContainer creates a container with the given capacity and initial level.
func NewContainer(clock *Clock, capacity, initial float64) (*Container, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("container capacity %v: %w", capacity, ErrInvalidRequest)
	}
	if initial < 0 || initial > capacity {
		return nil, fmt.Errorf("initial level %v outside [0, %v]: %w", initial, capacity, ErrInvalidRequest)
	}
	return &Container{clock: clock, capacity: capacity, level: initial}, nil
}

// Capacity returns the maximum level the container can hold.
func (c *Container) Capacity() float64 {
	return c.capacity
}

// Level returns the current quantity held.
func (c *Container) Level() float64 {
	return c.level
}

// Waiting returns the number of blocked withdrawals.
func (c *Container) Waiting() int {
	return len(c.waiters)
}

// Get withdraws amount from the container. The returned event fires at the
// current virtual time if the level already covers the amount and no earlier
// withdrawal is still blocked; otherwise the caller joins the FIFO waiter
// queue and the event fires once a deposit makes the full amount available.
// The decrement happens at grant time, atomically with respect to all other
// waiters. The event payload is the granted amount.
func (c *Container) Get(amount float64) (*Event, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("get of %v: %w", amount, ErrInvalidRequest)
	}
	ev := c.clock.NewEvent()
	if len(c.waiters) == 0 && c.level >= amount {
		c.level -= amount
		ev.Trigger(amount)
		logrus.Debugf("[t=%9.3f] tank: got %.1f immediately, level %.1f",
			c.clock.Now(), amount, c.level)
		return ev, nil
	}
	c.waiters = append(c.waiters, &getRequest{amount: amount, granted: ev})
	logrus.Debugf("[t=%9.3f] tank: get %.1f blocked (level %.1f, %d waiting)",
		c.clock.Now(), amount, c.level, len(c.waiters))
	return ev, nil
}

// Put deposits amount into the container and wakes blocked withdrawals in
// FIFO order. A deposit that would push the level past the capacity returns
// ErrCapacityExceeded and changes nothing.
func (c *Container) Put(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("put of %v: %w", amount, ErrInvalidRequest)
	}
	if c.level+amount > c.capacity+levelTolerance {
		return fmt.Errorf("put of %v onto level %v (capacity %v): %w",
			amount, c.level, c.capacity, ErrCapacityExceeded)
	}
	c.level = math.Min(c.capacity, c.level+amount)
	logrus.Debugf("[t=%9.3f] tank: put %.1f, level %.1f", c.clock.Now(), amount, c.level)
	c.dispatch()
	return nil
}

// dispatch grants blocked withdrawals from the head of the queue while the
// level covers each full amount. Granting stops at the first waiter that
// still cannot be satisfied: later, smaller requests never overtake.
func (c *Container) dispatch() {
	for len(c.waiters) > 0 {
		w := c.waiters[0]
		if c.level < w.amount {
			return
		}
		c.waiters = c.waiters[1:]
		c.level -= w.amount
		w.granted.Trigger(w.amount)
		logrus.Debugf("[t=%9.3f] tank: granted blocked get of %.1f, level %.1f",
			c.clock.Now(), w.amount, c.level)
	}
}
