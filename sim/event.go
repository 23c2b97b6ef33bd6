package sim

// EventState tracks an event through its lifecycle. An event is pending from
// creation until its condition is met, triggered while it sits in the clock's
// pending heap waiting to be popped, and processed once all of its callbacks
// have run. A processed event is never revisited.
type EventState int

const (
	// StatePending means the event's condition has not been met yet.
	StatePending EventState = iota
	// StateTriggered means the event has fired and is enqueued for processing.
	StateTriggered
	// StateProcessed means all callbacks have run.
	StateProcessed
)

// Callback is a continuation resumed by the clock when its event fires.
type Callback func(*Event)

// Event is the unit of coordination in the simulation: timeouts, resource
// admissions, container grants and termination signals are all events.
// Processes suspend by subscribing a continuation to an event and are resumed
// by the clock when the event is popped from the pending heap.
type Event struct {
	clock     *Clock
	state     EventState
	callbacks []Callback
	payload   any
}

// State returns the event's lifecycle state.
func (e *Event) State() EventState {
	return e.state
}

// Triggered reports whether the event has fired (triggered or processed).
func (e *Event) Triggered() bool {
	return e.state != StatePending
}

// Payload returns the value attached when the event was triggered, or nil.
func (e *Event) Payload() any {
	return e.payload
}

// Subscribe registers a continuation to run when the event is processed.
// Subscribing to an already-processed event schedules the continuation at the
// current virtual time instead of dropping it, so late subscribers still run.
func (e *Event) Subscribe(cb Callback) {
	if e.state == StateProcessed {
		late := e.clock.Timeout(0)
		late.callbacks = append(late.callbacks, func(*Event) { cb(e) })
		return
	}
	e.callbacks = append(e.callbacks, cb)
}

// Trigger fires the event with the given payload, enqueueing it at the
// current virtual time. Triggering an already-fired event is a no-op; the
// return value reports whether this call performed the transition. This is
// what makes composite events idempotent without extra bookkeeping.
func (e *Event) Trigger(payload any) bool {
	if e.state != StatePending {
		return false
	}
	e.state = StateTriggered
	e.payload = payload
	e.clock.enqueue(e, 0)
	return true
}

// process runs all callbacks in registration order and marks the event
// processed. Callbacks may subscribe further callbacks to the same event
// mid-flight; the index loop picks those up in the same pass.
func (e *Event) process() {
	if e.state == StateProcessed {
		return
	}
	e.state = StateTriggered
	for i := 0; i < len(e.callbacks); i++ {
		e.callbacks[i](e)
	}
	e.callbacks = nil
	e.state = StateProcessed
}

// AnyOf returns an event that fires the instant the first of the source
// events fires. Its payload is the source event that won the race. Later
// source firings are no-ops. A source that has already fired wins immediately
// (at the current virtual time).
func AnyOf(clock *Clock, events ...*Event) *Event {
	first := clock.NewEvent()
	for _, src := range events {
		src.Subscribe(func(ev *Event) {
			first.Trigger(ev)
		})
	}
	return first
}
