package hive

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// PointerEvent is passed to event callbacks.
type PointerEvent struct {
	Type EventType
	// X and Y are canvas-local coordinates.
	X, Y float64
	// PageX and PageY are the coordinates before the canvas offset was removed.
	PageX, PageY float64
	// Target is the capturing component, or the component whose uncaptured
	// callback is running.
	Target   *Component
	Captured bool
}

// EntityStore is the interface for optional ECS integration.
// When set on a Canvas, captured pointer events on components with a
// non-zero EntityID are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type        EventType
	EntityID    uint32
	ComponentID uint32
	Name        string
	X, Y        float64
}

type listener struct {
	comp         *Component
	onEvent      func(PointerEvent)
	onUncaptured func(PointerEvent)
}

type keyBinding struct {
	key ebiten.Key
	fn  func()
}

// On registers comp as a target for typ. onEvent runs when comp is the first
// registered target containing the pointer; onUncaptured (optional) runs on
// every target when no target contains it. Registering the same component
// again replaces its callbacks and keeps its place in the order.
//
// Only vector components have paths to hit-test. Any other target is logged
// as a configuration error and skipped.
func (c *Canvas) On(typ EventType, comp *Component, onEvent, onUncaptured func(PointerEvent)) {
	if comp == nil || comp.typ != TypeVector {
		name, ct := "", TypeText
		if comp != nil {
			name, ct = comp.Name, comp.typ
		}
		c.log.Error("hive: event target must be a vector component",
			zap.Stringer("event", typ), zap.String("component", name), zap.Stringer("type", ct))
		return
	}
	if int(typ) >= len(c.listeners) {
		c.log.Error("hive: unknown event type", zap.Stringer("event", typ))
		return
	}
	ls := c.listeners[typ]
	for i := range ls {
		if ls[i].comp == comp {
			ls[i].onEvent = onEvent
			ls[i].onUncaptured = onUncaptured
			return
		}
	}
	c.listeners[typ] = append(ls, listener{comp: comp, onEvent: onEvent, onUncaptured: onUncaptured})
}

// Off removes comp's registration for typ. Returns false if it had none.
func (c *Canvas) Off(typ EventType, comp *Component) bool {
	if int(typ) >= len(c.listeners) {
		return false
	}
	n := len(c.listeners[typ])
	c.listeners[typ] = slices.DeleteFunc(c.listeners[typ], func(l listener) bool {
		return l.comp == comp
	})
	return len(c.listeners[typ]) != n
}

// Pointer returns the last pointer position seen by a mousemove dispatch, in
// canvas coordinates.
func (c *Canvas) Pointer() Vec2 {
	return c.pointer
}

// DispatchClick delivers a click at page coordinates.
func (c *Canvas) DispatchClick(pageX, pageY float64) {
	c.dispatch(EventClick, pageX-c.offset.X, pageY-c.offset.Y)
}

// DispatchMouseMove records the pointer position and delivers a mousemove
// at page coordinates.
func (c *Canvas) DispatchMouseMove(pageX, pageY float64) {
	c.dispatch(EventMouseMove, pageX-c.offset.X, pageY-c.offset.Y)
}

// dispatch runs the capture rules for canvas-local (x, y): targets are tried
// in registration order and the first whose path contains the point
// captures the event. If none does, every target's uncaptured callback runs.
// z-order plays no part.
func (c *Canvas) dispatch(typ EventType, x, y float64) {
	if typ == EventMouseMove {
		c.pointer = Vec2{X: x, Y: y}
	}
	ev := PointerEvent{Type: typ, X: x, Y: y, PageX: x + c.offset.X, PageY: y + c.offset.Y}

	// Callbacks may register or remove targets; iterate a snapshot.
	ls := slices.Clone(c.listeners[typ])
	for _, l := range ls {
		if !l.comp.IsPointInPath(x, y) {
			continue
		}
		ev.Target, ev.Captured = l.comp, true
		c.emitInteractionEvent(typ, l.comp, x, y)
		if l.onEvent != nil {
			l.onEvent(ev)
		}
		return
	}
	for _, l := range ls {
		if l.onUncaptured != nil {
			ev.Target = l.comp
			l.onUncaptured(ev)
		}
	}
}

// SetEntityStore sets the optional ECS bridge.
func (c *Canvas) SetEntityStore(store EntityStore) {
	c.store = store
}

func (c *Canvas) emitInteractionEvent(typ EventType, comp *Component, x, y float64) {
	if c.store == nil || comp == nil || comp.EntityID == 0 {
		return
	}
	c.store.EmitEvent(InteractionEvent{
		Type:        typ,
		EntityID:    comp.EntityID,
		ComponentID: comp.ID,
		Name:        comp.Name,
		X:           x,
		Y:           y,
	})
}

// OnKey runs fn whenever key is pressed.
func (c *Canvas) OnKey(key ebiten.Key, fn func()) {
	c.keys = append(c.keys, keyBinding{key: key, fn: fn})
}

// OnBlur runs fn whenever the window loses focus.
func (c *Canvas) OnBlur(fn func()) {
	c.blurFns = append(c.blurFns, fn)
}

func (c *Canvas) pressKey(key ebiten.Key) {
	for _, b := range c.keys {
		if b.key == key {
			b.fn()
		}
	}
}

func (c *Canvas) blur() {
	for _, fn := range c.blurFns {
		fn()
	}
}

// --- Input polling ---

// pollInput reads ebiten's input state. Called from Canvas.Update.
// Cursor positions are already canvas-local.
func (c *Canvas) pollInput() {
	focused := ebiten.IsFocused()
	if c.focused && !focused {
		c.blur()
	}
	c.focused = focused

	mx, my := ebiten.CursorPosition()
	cur := Vec2{X: float64(mx), Y: float64(my)}
	if cur != c.lastCursor {
		c.lastCursor = cur
		c.dispatch(EventMouseMove, cur.X, cur.Y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.dispatch(EventClick, cur.X, cur.Y)
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		x, y := float64(tx), float64(ty)
		c.dispatch(EventMouseMove, x, y)
		c.dispatch(EventClick, x, y)
	}

	for _, b := range c.keys {
		if inpututil.IsKeyJustPressed(b.key) {
			b.fn()
		}
	}
}
