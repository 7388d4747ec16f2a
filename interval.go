package hive

import (
	"slices"
	"time"
)

// CancelFunc stops a timer. Calling it more than once is harmless.
type CancelFunc func()

type timer struct {
	name    string
	every   time.Duration
	next    time.Time
	count   int
	repeat  bool
	fn      func(cancel CancelFunc, count int)
	cancel  CancelFunc
	removed bool
}

// AddInterval calls fn every period under name, passing a 1-based fire
// count. At most one timer runs per name: if name is already active its
// existing cancel handle is returned and fn is ignored.
//
// Timers fire from Tick, so their resolution is the frame rate. A tick that
// spans several periods fires once.
func (c *Canvas) AddInterval(name string, every time.Duration, fn func(cancel CancelFunc, count int)) CancelFunc {
	return c.addTimer(name, every, true, fn)
}

// AddTimeout calls fn once after the delay. It shares the name registry with
// AddInterval and is idempotent the same way.
func (c *Canvas) AddTimeout(name string, after time.Duration, fn func()) CancelFunc {
	return c.addTimer(name, after, false, func(CancelFunc, int) { fn() })
}

func (c *Canvas) addTimer(name string, d time.Duration, repeat bool, fn func(CancelFunc, int)) CancelFunc {
	if t := c.findTimer(name); t != nil {
		return t.cancel
	}
	t := &timer{
		name:   name,
		every:  d,
		next:   c.clock.Now().Add(d),
		repeat: repeat,
		fn:     fn,
	}
	t.cancel = func() { c.removeTimer(t) }
	c.timers = append(c.timers, t)
	return t.cancel
}

// ClearInterval cancels the named timer. Returns false if none is active.
func (c *Canvas) ClearInterval(name string) bool {
	t := c.findTimer(name)
	if t == nil {
		return false
	}
	c.removeTimer(t)
	return true
}

// IntervalActive reports whether a timer is registered under name.
func (c *Canvas) IntervalActive(name string) bool {
	return c.findTimer(name) != nil
}

func (c *Canvas) findTimer(name string) *timer {
	for _, t := range c.timers {
		if t.name == name {
			return t
		}
	}
	return nil
}

func (c *Canvas) removeTimer(t *timer) {
	if t.removed {
		return
	}
	t.removed = true
	c.timers = slices.DeleteFunc(c.timers, func(x *timer) bool { return x == t })
}

// runTimers fires every timer due at now. Timers added by a callback during
// this pass are first considered on the next tick.
func (c *Canvas) runTimers(now time.Time) {
	if len(c.timers) == 0 {
		return
	}
	for _, t := range slices.Clone(c.timers) {
		if t.removed || now.Before(t.next) {
			continue
		}
		t.count++
		if t.repeat {
			t.next = t.next.Add(t.every)
			if !t.next.After(now) {
				t.next = now.Add(t.every)
			}
		} else {
			c.removeTimer(t)
		}
		t.fn(t.cancel, t.count)
	}
}
