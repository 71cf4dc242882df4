package dux

import (
	"sync/atomic"
	"time"
)

// canceller carries the shared stop flag for one Compute call. The flag
// transitions false -> true exactly once and is never reset, so workers
// may read it without any ordering guarantees.
type canceller struct {
	flag  atomic.Bool
	fired atomic.Bool
	done  chan struct{}
}

// startWatcher launches a goroutine that polls shouldCancel at the given
// interval and sets the flag on a positive result. A nil predicate yields
// a canceller whose watcher has already exited.
func startWatcher(shouldCancel func() bool, interval time.Duration) *canceller {
	c := &canceller{done: make(chan struct{})}

	if shouldCancel == nil {
		close(c.done)

		return c
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if c.flag.Load() {
				return
			}

			if shouldCancel() {
				c.fired.Store(true)
				c.flag.Store(true)

				return
			}
		}
	}()

	return c
}

// stop force-sets the flag and joins the watcher, guaranteeing no
// background activity survives the call that started it.
func (c *canceller) stop() {
	c.flag.Store(true)
	<-c.done
}
