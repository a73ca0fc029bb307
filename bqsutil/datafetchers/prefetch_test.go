package datafetchers

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIntervalFetcher(t *testing.T) {
	var calls atomic.Int64

	updateFn := func() (int, error) {
		return int(calls.Add(1)), nil
	}

	p := NewIntervalFetcher(updateFn, 10*time.Millisecond)

	// The first fetch runs in the background; poll until it lands.
	require.Eventually(t, func() bool {
		_, _, err := p.Get()
		return err == nil
	}, time.Second, time.Millisecond)

	v, timestamp, err := p.Get()
	require.NoError(t, err)
	require.GreaterOrEqual(t, v, 1)
	require.False(t, timestamp.IsZero())

	// The value keeps refreshing on the interval.
	require.Eventually(t, func() bool {
		latest, _, err := p.Get()
		return err == nil && latest > v
	}, time.Second, time.Millisecond)

	require.Equal(t, 10*time.Millisecond, p.GetRefetchInterval())

	p.Close()

	_, _, err = p.Get()
	require.Error(t, err)
}

func TestIntervalFetcher_CloseStopsRefreshing(t *testing.T) {
	var calls atomic.Int64

	updateFn := func() (int, error) {
		return int(calls.Add(1)), nil
	}

	p := NewIntervalFetcher(updateFn, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, time.Millisecond)

	p.Close()
	// Closing again is a no-op rather than a panic on the done channel.
	p.Close()

	// Let any refresh already in flight land before sampling the counter.
	time.Sleep(20 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, stopped, calls.Load())
}

func TestIntervalFetcher_ErrorKeepsLastValue(t *testing.T) {
	var calls atomic.Int64

	updateFn := func() (int, error) {
		if calls.Add(1) > 1 {
			return 0, errors.New("fetch failed")
		}
		return 42, nil
	}

	p := NewIntervalFetcher(updateFn, 10*time.Millisecond)
	defer p.Close()

	require.Eventually(t, func() bool {
		_, _, err := p.Get()
		return err == nil
	}, time.Second, time.Millisecond)

	// Later failures leave the cached value in place, only the timestamp
	// goes stale.
	require.Eventually(t, func() bool {
		return calls.Load() > 2
	}, time.Second, time.Millisecond)

	v, _, err := p.Get()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}
