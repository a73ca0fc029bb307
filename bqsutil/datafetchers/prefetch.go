package datafetchers

import (
	"errors"
	"sync"
	"time"
)

// Fetcher is an interface that provides a method to get a value.
type Fetcher[T any] interface {
	Get() (T, time.Time, error)
	GetRefetchInterval() time.Duration
}

// IntervalFetcher is a struct that prefetches a value at a given interval
// and provides a method to get the latest value.
// NOTE: It may return stale data if the update function takes longer than the interval.
type IntervalFetcher[T any] struct {
	updateFn  func() (T, error)
	interval  time.Duration
	hasClosed bool

	lastRetrievedTime time.Time
	cache             T
	ticker            *time.Ticker
	done              chan struct{}
	mutex             sync.RWMutex
}

var _ Fetcher[any] = &IntervalFetcher[any]{}

// NewIntervalFetcher creates a fetcher that refreshes its value with
// updateFn every interval, starting immediately.
func NewIntervalFetcher[T any](updateFn func() (T, error), interval time.Duration) *IntervalFetcher[T] {
	if interval <= 0 {
		panic("interval must be greater than 0")
	}
	prefetcher := &IntervalFetcher[T]{
		updateFn: updateFn,
		interval: interval,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}

	go prefetcher.run()

	return prefetcher
}

// run performs the initial fetch and then refreshes on every tick until
// Close is called. Ticker channels are never closed by the runtime, so
// the loop exits through the done channel.
func (p *IntervalFetcher[T]) run() {
	p.prefetch()

	for {
		select {
		case <-p.ticker.C:
			p.prefetch()
		case <-p.done:
			return
		}
	}
}

func (p *IntervalFetcher[T]) prefetch() {
	newValue, err := p.updateFn()
	if err != nil {
		// By silently skipping the error, the values would become stale,
		// signaling that to the client.
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.lastRetrievedTime = time.Now()
	p.cache = newValue
}

// Get returns the latest value and the time it was last retrieved.
// If no value has ever been retrieved, it returns the zero value of T and time.Time{}.
// If the fetcher has been closed, it returns the zero value of T and time.Time{}.
func (p *IntervalFetcher[T]) Get() (T, time.Time, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.lastRetrievedTime.IsZero() {
		return p.cache, time.Time{}, errors.New("no cached value has ever been retrieved")
	}
	if p.hasClosed {
		return p.cache, time.Time{}, errors.New("prefetcher has been closed")
	}

	return p.cache, p.lastRetrievedTime, nil
}

// Close stops the background refresh goroutine. Safe to call more than once.
func (p *IntervalFetcher[T]) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.hasClosed {
		return
	}

	p.hasClosed = true
	p.ticker.Stop()
	close(p.done)
}

// GetRefetchInterval returns the refresh interval.
func (p *IntervalFetcher[T]) GetRefetchInterval() time.Duration {
	return p.interval
}
