package hive

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticClick
	syntheticKey
	syntheticBlur
)

// syntheticPointerEvent represents a single injected input event.
// Canvas coordinates are used (matching what an AI sees in screenshots),
// identical to real mouse input.
type syntheticPointerEvent struct {
	kind syntheticKind
	x, y float64
	key  ebiten.Key
}

// InjectMove queues a pointer move to the given canvas coordinates.
// The event is consumed on a later Tick, one event per tick.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{kind: syntheticMove, x: x, y: y})
}

// InjectClick is a convenience that queues a move followed by a click at the
// same canvas coordinates. Consumes two ticks.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectMove(x, y)
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{kind: syntheticClick, x: x, y: y})
}

// InjectPath queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY) over the given number of ticks (at least 1).
func (c *Canvas) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 1)
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectKey queues a key press for handlers registered with OnKey.
func (c *Canvas) InjectKey(key ebiten.Key) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{kind: syntheticKey, key: key})
}

// InjectBlur queues a window focus loss for handlers registered with OnBlur.
func (c *Canvas) InjectBlur() {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{kind: syntheticBlur})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same dispatch as real input. Returns true if an event was
// consumed.
func (c *Canvas) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		c.dispatch(EventMouseMove, evt.x, evt.y)
	case syntheticClick:
		c.dispatch(EventClick, evt.x, evt.y)
	case syntheticKey:
		c.pressKey(evt.key)
	case syntheticBlur:
		c.blur()
	}
	return true
}
