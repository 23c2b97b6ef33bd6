package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Ticket represents one request against a Resource. Its admission event fires
// when the requester holds a server slot; the holder must eventually pass the
// ticket back to Release on every exit path of its logic. The resource never
// expires tickets on its own.
type Ticket struct {
	owner    *Process
	admitted *Event
	active   bool
}

// Admitted returns the event fired when the ticket's owner is admitted.
func (t *Ticket) Admitted() *Event {
	return t.admitted
}

// Active reports whether the ticket currently holds a server slot.
func (t *Ticket) Active() bool {
	return t.active
}

// Resource is a capacity-limited mutual-exclusion server with FIFO queuing: a
// refueling pump. A requester is admitted immediately while slots are free
// and queues otherwise; Release always admits the queue head before it
// returns, so admission order equals arrival order.
type Resource struct {
	clock    *Clock
	name     string
	capacity int
	users    []*Ticket
	queue    []*Ticket
}

// NewResource creates a resource with the given positive capacity.
func NewResource(clock *Clock, name string, capacity int) *Resource {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResource %s: capacity must be positive, got %d", name, capacity))
	}
	return &Resource{clock: clock, name: name, capacity: capacity}
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return r.name
}

// Capacity returns the number of concurrent holders the resource admits.
func (r *Resource) Capacity() int {
	return r.capacity
}

// InUse returns the number of tickets currently holding a slot.
func (r *Resource) InUse() int {
	return len(r.users)
}

// QueueLen returns the number of tickets waiting for admission.
func (r *Resource) QueueLen() int {
	return len(r.queue)
}

// Load is the routing metric used for least-loaded pump selection:
// active holders plus queued requesters.
func (r *Resource) Load() int {
	return len(r.users) + len(r.queue)
}

// Request asks for a slot on behalf of p. The returned ticket's admission
// event fires at the current virtual time if a slot is free, or later when
// Release promotes the ticket from the queue.
func (r *Resource) Request(p *Process) *Ticket {
	t := &Ticket{owner: p, admitted: r.clock.NewEvent()}
	if len(r.users) < r.capacity {
		r.admit(t)
	} else {
		r.queue = append(r.queue, t)
		logrus.Debugf("[t=%9.3f] %s: %s queued (depth %d)",
			r.clock.Now(), r.name, p.Name(), len(r.queue))
	}
	return t
}

// Release gives the slot back and, before returning, admits the head of the
// queue if anyone is waiting. Releasing a ticket that is not active returns
// ErrInvalidRequest.
func (r *Resource) Release(t *Ticket) error {
	if !t.active {
		return fmt.Errorf("release of inactive ticket on %s: %w", r.name, ErrInvalidRequest)
	}
	for i, u := range r.users {
		if u == t {
			r.users = append(r.users[:i], r.users[i+1:]...)
			t.active = false
			if len(r.queue) > 0 {
				next := r.queue[0]
				r.queue = r.queue[1:]
				r.admit(next)
			}
			return nil
		}
	}
	return fmt.Errorf("release of unknown ticket on %s: %w", r.name, ErrInvalidRequest)
}

// admit moves a ticket into the user set and fires its admission event.
func (r *Resource) admit(t *Ticket) {
	r.users = append(r.users, t)
	t.active = true
	t.admitted.Trigger(t)
	logrus.Debugf("[t=%9.3f] %s: %s admitted (%d/%d in use)",
		r.clock.Now(), r.name, t.owner.Name(), len(r.users), r.capacity)
}
