package application

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncerOnlyLastTriggerFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	var last atomic.Int32
	for i := range 5 {
		n := int32(i)
		d.Trigger(func() {
			fired.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 10*time.Millisecond)
	require.Equal(t, int32(4), last.Load(), "only the last callback fires")

	// Quiet period passed: no further callbacks.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, fired.Load())
}
