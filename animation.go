package hive

import (
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Frame is what an animation callback receives each frame.
type Frame struct {
	Elapsed   time.Duration
	Remaining time.Duration
	// Coefficient is Elapsed/duration. It is not clamped and can exceed 1 on
	// the final frame.
	Coefficient float64
}

// Eased maps the coefficient, clamped to [0, 1], through a gween easing
// function.
func (f Frame) Eased(fn ease.TweenFunc) float64 {
	return float64(fn(float32(clamp01(f.Coefficient)), 0, 1, 1))
}

// AnimationOption configures Animate.
type AnimationOption func(*animation)

// OnComplete adds a callback run when the animation completes, before its
// future resolves. Cancelled animations never run it.
func OnComplete(fn func()) AnimationOption {
	return func(a *animation) {
		a.onComplete = append(a.onComplete, fn)
	}
}

type animation struct {
	name       string
	duration   time.Duration
	fn         func(Frame)
	onComplete []func()
	future     *Future[struct{}]

	start, last time.Time
	started     bool
	reset       bool
	complete    bool
	removed     bool
}

// Animate starts the named animation. Every frame with a new timestamp and a
// positive elapsed time calls fn; the run completes once the elapsed time
// reaches d or CompleteAnimation is called, checked after fn so the final
// frame is still drawn.
//
// Starting a name that is already running does not create a second run: the
// existing run restarts its timing on the next frame (which skips fn) and its
// future is returned. fn and opts are ignored in that case.
func (c *Canvas) Animate(name string, d time.Duration, fn func(Frame), opts ...AnimationOption) *Future[struct{}] {
	if a := c.findAnimation(name); a != nil {
		a.reset = true
		return a.future
	}
	a := &animation{
		name:     name,
		duration: d,
		fn:       fn,
		future:   NewFuture[struct{}](),
	}
	for _, opt := range opts {
		opt(a)
	}
	c.animations = append(c.animations, a)
	return a.future
}

// AnimationRunning reports whether the named animation is in flight.
func (c *Canvas) AnimationRunning(name string) bool {
	return c.findAnimation(name) != nil
}

// CompleteAnimation marks the named animation complete; it finishes on its
// next frame. Returns false if no such animation is running.
func (c *Canvas) CompleteAnimation(name string) bool {
	a := c.findAnimation(name)
	if a == nil {
		return false
	}
	a.complete = true
	return true
}

// CancelAnimation removes the named animation without completing it. Its
// future fails with ErrCancelled. Returns false if no such animation is
// running.
func (c *Canvas) CancelAnimation(name string) bool {
	a := c.findAnimation(name)
	if a == nil {
		return false
	}
	c.removeAnimation(a)
	a.future.Fail(ErrCancelled)
	return true
}

func (c *Canvas) findAnimation(name string) *animation {
	for _, a := range c.animations {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (c *Canvas) removeAnimation(a *animation) {
	a.removed = true
	c.animations = slices.DeleteFunc(c.animations, func(x *animation) bool { return x == a })
}

// runAnimations advances every animation to now. Animations started by a
// callback during this pass first run on the next tick.
func (c *Canvas) runAnimations(now time.Time) {
	if len(c.animations) == 0 {
		return
	}
	for _, a := range slices.Clone(c.animations) {
		if a.removed {
			continue
		}
		c.stepAnimation(a, now)
	}
}

func (c *Canvas) stepAnimation(a *animation, now time.Time) {
	if !a.started || a.reset {
		a.start, a.last = now, now
		a.started, a.reset = true, false
		return
	}
	if !now.After(a.last) {
		return
	}
	a.last = now

	elapsed := now.Sub(a.start)
	if elapsed > 0 && a.fn != nil {
		f := Frame{Elapsed: elapsed, Remaining: a.duration - elapsed, Coefficient: 1}
		if a.duration > 0 {
			f.Coefficient = float64(elapsed) / float64(a.duration)
		}
		a.fn(f)
	}
	if a.removed {
		return
	}
	if elapsed >= a.duration || a.complete {
		c.removeAnimation(a)
		for _, fn := range a.onComplete {
			fn()
		}
		a.future.Resolve(struct{}{})
	}
}

// --- Tweens ---

// TweenGroup animates up to 4 float64 fields on a Component simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenFill, TweenRadius) and either call Update(dt) yourself or hand it to
// Canvas.PlayTween. If the target component is deleted, the group stops
// immediately.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]*float64
	ends     [4]float64
	target   *Component
	duration time.Duration
	Done     bool
}

// Duration returns how long the group runs.
func (g *TweenGroup) Duration() time.Duration {
	return g.duration
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target has been deleted, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.owner == nil {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.sync()
}

// Finish jumps every tween to its end value.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Done = true
	g.sync()
}

// sync keeps a tweened circle's size in step with its radius.
func (g *TweenGroup) sync() {
	if t := g.target; t != nil && t.Vector != nil && t.Vector.Shape == ShapeCircle {
		t.Width, t.Height = 2*t.Vector.Radius, 2*t.Vector.Radius
	}
}

func newTweenGroup(c *Component, d time.Duration, fn ease.TweenFunc, pairs ...tweenField) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: c, duration: d}
	secs := float32(d.Seconds())
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), secs, fn)
		g.fields[i] = p.field
		g.ends[i] = p.to
	}
	return g
}

type tweenField struct {
	field *float64
	to    float64
}

// TweenPosition creates a TweenGroup that moves c to (toX, toY).
func TweenPosition(c *Component, toX, toY float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(c, d, fn, tweenField{&c.X, toX}, tweenField{&c.Y, toY})
}

// TweenSize creates a TweenGroup that resizes c to (w, h).
func TweenSize(c *Component, w, h float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(c, d, fn, tweenField{&c.Width, w}, tweenField{&c.Height, h})
}

// TweenFill creates a TweenGroup that fades c's fill color to the target.
func TweenFill(c *Component, to Color, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	f := &c.style.Fill
	return newTweenGroup(c, d, fn,
		tweenField{&f.R, to.R}, tweenField{&f.G, to.G},
		tweenField{&f.B, to.B}, tweenField{&f.A, to.A})
}

// TweenRadius creates a TweenGroup that grows or shrinks a circle vector.
// Returns nil for anything else.
func TweenRadius(c *Component, r float64, d time.Duration, fn ease.TweenFunc) *TweenGroup {
	if c.Vector == nil || c.Vector.Shape != ShapeCircle {
		return nil
	}
	return newTweenGroup(c, d, fn, tweenField{&c.Vector.Radius, r})
}

// PlayTween drives g through the animation scheduler under name. The group
// is finished when the animation completes so the end values always land.
func (c *Canvas) PlayTween(name string, g *TweenGroup, opts ...AnimationOption) *Future[struct{}] {
	var prev time.Duration
	step := func(f Frame) {
		dt := f.Elapsed - prev
		if dt < 0 {
			dt = f.Elapsed
		}
		prev = f.Elapsed
		g.Update(float32(dt.Seconds()))
	}
	opts = append([]AnimationOption{OnComplete(g.Finish)}, opts...)
	return c.Animate(name, g.duration, step, opts...)
}
