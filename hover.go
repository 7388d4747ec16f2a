package hive

import "time"

// DefaultHoverPoll is the leave-detection poll period used when
// HoverConfig.Poll is zero.
const DefaultHoverPoll = 50 * time.Millisecond

// HoverConfig configures WatchHover.
type HoverConfig struct {
	// Poll is how often the last known pointer position is re-tested while
	// the pointer is inside.
	Poll    time.Duration
	OnEnter func()
	OnLeave func()
}

// WatchHover reports the pointer entering and leaving comp. Entry is seen by
// comp's mousemove registration, which WatchHover takes over. Canvas paths
// emit no leave signal, so leaving is detected by polling Pointer() against
// the component's path on an interval named "hover:"+comp.Name, which only
// runs while the pointer is inside.
//
// The returned CancelFunc stops watching; if the pointer is inside at that
// moment OnLeave runs.
func (c *Canvas) WatchHover(comp *Component, cfg HoverConfig) CancelFunc {
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultHoverPoll
	}
	name := "hover:" + comp.Name
	inside := false

	leave := func() {
		if !inside {
			return
		}
		inside = false
		c.ClearInterval(name)
		if cfg.OnLeave != nil {
			cfg.OnLeave()
		}
	}

	c.On(EventMouseMove, comp, func(PointerEvent) {
		if inside {
			return
		}
		inside = true
		if cfg.OnEnter != nil {
			cfg.OnEnter()
		}
		c.AddInterval(name, cfg.Poll, func(CancelFunc, int) {
			p := c.Pointer()
			if comp.owner == nil || !comp.Visible || !comp.IsPointInPath(p.X, p.Y) {
				leave()
			}
		})
	}, nil)

	return func() {
		c.Off(EventMouseMove, comp)
		leave()
	}
}
