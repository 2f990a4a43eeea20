// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"sync"
	"time"
)

// Clock wraps global time so tests can pin it to a fixed instant. The zero
// value reads the wall clock. It is safe for concurrent use.
type Clock struct {
	mu    sync.RWMutex
	faked bool
	now   time.Time
}

// Set pins the clock to t until Sync is called.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = true
	c.now = t
}

// Sync returns the clock to wall time.
func (c *Clock) Sync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = false
}

// Time returns the current time on this clock.
func (c *Clock) Time() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.faked {
		return c.now
	}
	return time.Now()
}

// UnixTime returns the current time as Unix seconds.
func (c *Clock) UnixTime() int64 {
	return c.Time().Unix()
}
