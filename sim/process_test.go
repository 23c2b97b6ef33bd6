package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_HoldResumesAfterDelay(t *testing.T) {
	// GIVEN a process that holds twice
	c := NewClock()
	var resumes []float64
	NewProcess(c, "holder", func(p *Process) {
		p.Hold(5, func() {
			resumes = append(resumes, c.Now())
			p.Hold(10, func() {
				resumes = append(resumes, c.Now())
				p.Finish()
			})
		})
	})

	// WHEN the clock runs
	require.NoError(t, c.RunUntil(nil))

	// THEN the body resumed at the cumulative delays
	assert.Equal(t, []float64{5, 15}, resumes)
}

func TestProcess_WaitDeliversPayload(t *testing.T) {
	// GIVEN a process waiting on a signal
	c := NewClock()
	signal := c.NewEvent()
	var got any
	NewProcess(c, "waiter", func(p *Process) {
		p.Wait(signal, func(payload any) {
			got = payload
			p.Finish()
		})
	})
	c.Timeout(3).Subscribe(func(*Event) { signal.Trigger(42) })

	// WHEN the clock runs
	require.NoError(t, c.RunUntil(nil))

	// THEN the continuation received the signal's payload
	assert.Equal(t, 42, got)
}

func TestProcess_DoneFiresOnFinish(t *testing.T) {
	// GIVEN a process another process waits on
	c := NewClock()
	worker := NewProcess(c, "worker", func(p *Process) {
		p.Hold(7, p.Finish)
	})
	var doneAt float64 = -1
	worker.Done().Subscribe(func(e *Event) {
		doneAt = c.Now()
		assert.Same(t, worker, e.Payload())
	})

	require.NoError(t, c.RunUntil(nil))

	assert.Equal(t, 7.0, doneAt)
	assert.Equal(t, "worker", worker.Name())
}

func TestProcess_StartsAtCreationTime(t *testing.T) {
	// GIVEN a process spawned mid-run at t=4
	c := NewClock()
	var startedAt float64 = -1
	c.Timeout(4).Subscribe(func(*Event) {
		NewProcess(c, "late", func(p *Process) {
			startedAt = c.Now()
			p.Finish()
		})
	})

	require.NoError(t, c.RunUntil(nil))

	// THEN its body ran at the spawn instant, not before
	assert.Equal(t, 4.0, startedAt)
}
