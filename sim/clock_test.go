package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_RunUntil_OrdersByFireTime(t *testing.T) {
	// GIVEN timeouts scheduled out of order
	c := NewClock()
	var order []float64
	for _, delay := range []float64{30, 10, 20, 5, 25} {
		c.Timeout(delay).Subscribe(func(*Event) {
			order = append(order, c.Now())
		})
	}

	// WHEN the clock runs the schedule dry
	require.NoError(t, c.RunUntil(nil))

	// THEN events fire in non-decreasing fire-time order
	assert.Equal(t, []float64{5, 10, 20, 25, 30}, order)
	assert.Equal(t, 30.0, c.Now())
}

func TestClock_RunUntil_TiesBreakInSchedulingOrder(t *testing.T) {
	// GIVEN five events all scheduled for the same instant, in a known order
	c := NewClock()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		c.Timeout(7).Subscribe(func(*Event) {
			order = append(order, i)
		})
	}

	// WHEN the clock runs
	require.NoError(t, c.RunUntil(nil))

	// THEN same-time events are processed FIFO by insertion sequence
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestClock_RunUntil_StopsAtStopEvent(t *testing.T) {
	// GIVEN a stop timeout at t=10 and a later event at t=20
	c := NewClock()
	stop := c.Timeout(10)
	lateFired := false
	c.Timeout(20).Subscribe(func(*Event) { lateFired = true })

	// WHEN the clock runs until the stop event
	require.NoError(t, c.RunUntil(stop))

	// THEN the run ends at t=10 without processing the later event
	assert.Equal(t, 10.0, c.Now())
	assert.False(t, lateFired)
	assert.Equal(t, 1, c.Pending())
}

func TestClock_RunUntil_EmptyScheduleError(t *testing.T) {
	// GIVEN a stop event that nothing will ever trigger
	c := NewClock()
	stop := c.NewEvent()
	c.Timeout(5)

	// WHEN the schedule drains
	err := c.RunUntil(stop)

	// THEN the clock reports the deadlock explicitly
	assert.ErrorIs(t, err, ErrEmptySchedule)
}

func TestClock_RunUntil_NilStopDrainsCleanly(t *testing.T) {
	c := NewClock()
	c.Timeout(5)
	assert.NoError(t, c.RunUntil(nil))
}

func TestClock_Timeout_NegativeDelayPanics(t *testing.T) {
	c := NewClock()
	assert.Panics(t, func() { c.Timeout(-1) })
}

func TestClock_RunUntil_IterativeOverLongChains(t *testing.T) {
	// GIVEN a self-rescheduling chain tens of thousands of events long
	c := NewClock()
	const n = 50000
	count := 0
	var step Callback
	step = func(*Event) {
		count++
		if count < n {
			c.Timeout(1).Subscribe(step)
		}
	}
	c.Timeout(1).Subscribe(step)

	// WHEN the clock runs (iteratively, not recursively)
	require.NoError(t, c.RunUntil(nil))

	// THEN every event in the chain was processed
	assert.Equal(t, n, count)
	assert.Equal(t, float64(n), c.Now())
}

func TestClock_TimeNeverMovesBackwards(t *testing.T) {
	// GIVEN events whose callbacks schedule further zero-delay events
	c := NewClock()
	var times []float64
	c.Timeout(10).Subscribe(func(*Event) {
		c.Timeout(0).Subscribe(func(*Event) {
			times = append(times, c.Now())
		})
	})
	c.Timeout(20).Subscribe(func(*Event) {
		times = append(times, c.Now())
	})

	require.NoError(t, c.RunUntil(nil))

	// THEN the cursor is monotonically non-decreasing
	assert.Equal(t, []float64{10, 20}, times)
}
