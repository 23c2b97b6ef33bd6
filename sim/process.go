package sim

import "github.com/sirupsen/logrus"

// Process is a cooperative logical task: a vehicle lifecycle or a control
// loop. It owns no thread; its body is a chain of continuations that suspend
// at explicit wait points (Hold, Wait) and are resumed solely by the clock.
// There is no preemption and no cancellation: a process runs from creation to
// the call of Finish, and a process that decides not to wait simply returns.
type Process struct {
	clock *Clock
	name  string
	done  *Event
}

// NewProcess registers a process whose body starts at the current virtual
// time. The body receives the process itself so it can suspend and finish.
func NewProcess(clock *Clock, name string, run func(*Process)) *Process {
	p := &Process{
		clock: clock,
		name:  name,
		done:  clock.NewEvent(),
	}
	start := clock.Timeout(0)
	start.Subscribe(func(*Event) {
		logrus.Debugf("[t=%9.3f] %s: started", clock.Now(), name)
		run(p)
	})
	return p
}

// Name returns the process name, used only for logging.
func (p *Process) Name() string {
	return p.name
}

// Clock returns the clock driving this process.
func (p *Process) Clock() *Clock {
	return p.clock
}

// Hold suspends the process for delay time units, then resumes with the
// continuation. The timeout is owned exclusively by this process; nothing
// else can cancel it.
func (p *Process) Hold(delay float64, then func()) {
	p.clock.Timeout(delay).Subscribe(func(*Event) { then() })
}

// Wait suspends the process until ev fires, then resumes the continuation
// with the event's payload.
func (p *Process) Wait(ev *Event, then func(payload any)) {
	ev.Subscribe(func(e *Event) { then(e.Payload()) })
}

// Finish marks the end of the process's lifetime, firing its done event with
// the process as payload so waiters can identify who completed.
func (p *Process) Finish() {
	logrus.Debugf("[t=%9.3f] %s: finished", p.clock.Now(), p.name)
	p.done.Trigger(p)
}

// Done returns the event fired when the process finishes.
func (p *Process) Done() *Event {
	return p.done
}
