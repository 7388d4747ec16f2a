package hive

import (
	"cmp"
	"io/fs"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Clock supplies the frame timestamps that drive animations and timers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. Tests and scripted
// playback use it to step time deterministically.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// CanvasConfig configures NewCanvas. The zero value is usable.
type CanvasConfig struct {
	// Width and Height override the surface's reported size. Required when
	// the surface is not yet bound to an image.
	Width, Height int

	// Logger receives configuration errors and debug stats. Defaults to a
	// no-op logger.
	Logger *zap.Logger

	// Clock defaults to the wall clock.
	Clock Clock

	// Assets is the file system AddSprite and AddVectorPath read from.
	Assets fs.FS

	// Offset is the canvas position within the page. DispatchClick and
	// DispatchMouseMove subtract it from page coordinates. Scrolling is not
	// accounted for.
	Offset Vec2

	// LoadTimeout fails any asset load still pending after this long.
	// Zero waits indefinitely.
	LoadTimeout time.Duration

	// Rand drives random placement. Defaults to the global source.
	Rand *rand.Rand

	// Debug logs per-frame render stats at debug level.
	Debug bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// Canvas owns a drawing surface and everything placed on it: the component
// registry, event registrations, animations and timers. All methods must be
// called from the loop thread (ebiten's Update/Draw) unless noted otherwise.
type Canvas struct {
	surface Surface
	screen  *EbitenSurface // non-nil when surface draws onto ebiten images
	width   int
	height  int
	offset  Vec2

	log   *zap.Logger
	clock Clock
	rng   *rand.Rand
	debug bool

	lastStats renderStats

	components []*Component
	order      []*Component // paint order, valid while sorted
	sorted     bool

	animations []*animation
	timers     []*timer

	listeners [2][]listener
	pointer   Vec2
	store     EntityStore

	keys       []keyBinding
	blurFns    []func()
	focused    bool
	lastCursor Vec2

	assets      fs.FS
	loadTimeout time.Duration
	pending     Pending
	arrivals    arrivalQueue
	loads       []*assetLoad

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	screenshotDir   string
}

// NewCanvas returns a canvas drawing onto surface. A nil surface is replaced
// by an unbound EbitenSurface, which Draw binds to the screen each frame.
func NewCanvas(surface Surface, cfg CanvasConfig) *Canvas {
	if surface == nil {
		surface = NewEbitenSurface(nil)
	}
	w, h := surface.Size()
	if cfg.Width > 0 {
		w = cfg.Width
	}
	if cfg.Height > 0 {
		h = cfg.Height
	}
	c := &Canvas{
		surface:       surface,
		width:         w,
		height:        h,
		offset:        cfg.Offset,
		log:           cfg.Logger,
		clock:         cfg.Clock,
		rng:           cfg.Rand,
		debug:         cfg.Debug,
		assets:        cfg.Assets,
		loadTimeout:   cfg.LoadTimeout,
		screenshotDir: cfg.ScreenshotDir,
		focused:       true,
		sorted:        true,
	}
	if es, ok := surface.(*EbitenSurface); ok {
		c.screen = es
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.screenshotDir == "" {
		c.screenshotDir = "screenshots"
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Size returns the canvas dimensions.
func (c *Canvas) Size() Size {
	return Size{Width: float64(c.width), Height: float64(c.height)}
}

// Surface returns the surface the canvas renders onto.
func (c *Canvas) Surface() Surface { return c.surface }

// Logger returns the canvas logger.
func (c *Canvas) Logger() *zap.Logger { return c.log }

// Now returns the canvas clock's current time.
func (c *Canvas) Now() time.Time { return c.clock.Now() }

// --- Factories ---

// AddText creates and registers a text component, sized to its content.
func (c *Canvas) AddText(name, content string, opts TextOptions) *Component {
	comp := newComponent(c, name, TypeText)
	comp.Text = &TextData{Content: content, Outline: opts.Outline, NoFill: opts.NoFill}
	comp.SetStyle(opts.Style...)
	comp.X, comp.Y = opts.X, opts.Y
	comp.ZIndex = opts.ZIndex
	comp.Measure()
	c.register(comp)
	return comp
}

// AddVectorShape creates and registers a procedural vector. Path shapes can
// only come from AddVectorPath; asking for one here is logged and nil is
// returned.
func (c *Canvas) AddVectorShape(name string, shape Shape, opts ShapeOptions) *Component {
	comp := newComponent(c, name, TypeVector)
	comp.Vector = &VectorData{Shape: shape.Kind, Scale: 1}
	switch shape.Kind {
	case ShapeRectangle:
		comp.Width, comp.Height = shape.Width, shape.Height
	case ShapeCircle:
		comp.Vector.Radius = shape.Radius
		comp.Width, comp.Height = 2*shape.Radius, 2*shape.Radius
	default:
		c.log.Error("hive: unsupported shape for vector component",
			zap.String("component", name), zap.Stringer("shape", shape.Kind))
		return nil
	}
	comp.SetStyle(opts.Style...)
	comp.X, comp.Y = opts.X, opts.Y
	comp.ZIndex = opts.ZIndex
	if opts.AutoDomain {
		comp.SetAutoDomain()
	}
	c.register(comp)
	return comp
}

// AddRectangle is shorthand for a rectangle vector at the origin.
func (c *Canvas) AddRectangle(name string, w, h float64, style ...StyleOption) *Component {
	return c.AddVectorShape(name, Shape{Kind: ShapeRectangle, Width: w, Height: h}, ShapeOptions{Style: style})
}

// AddCircle is shorthand for a circle vector centered at the origin.
func (c *Canvas) AddCircle(name string, radius float64, style ...StyleOption) *Component {
	return c.AddVectorShape(name, Shape{Kind: ShapeCircle, Radius: radius}, ShapeOptions{Style: style})
}

func (c *Canvas) register(comp *Component) {
	c.components = append(c.components, comp)
	c.sorted = false
}

// --- Registry ---

// Components returns the registry in registration order. The returned slice
// must not be mutated.
func (c *Canvas) Components() []*Component {
	return c.components
}

// GetComponent returns the component registered under (typ, name). On
// failure the error is a *NotFoundError matching ErrNotFound; if the name is
// registered under another type, the error names that type as a hint.
func (c *Canvas) GetComponent(typ ComponentType, name string) (*Component, error) {
	var hint *ComponentType
	for _, comp := range c.components {
		if comp.Name != name {
			continue
		}
		if comp.typ == typ {
			return comp, nil
		}
		if hint == nil {
			t := comp.typ
			hint = &t
		}
	}
	return nil, &NotFoundError{Name: name, Type: typ, Hint: hint}
}

// DeleteComponent removes the first component registered under name. typ is
// accepted for symmetry with GetComponent and does not narrow the match.
// The component's event registrations are dropped with it. Returns false,
// after logging, if no component has that name.
func (c *Canvas) DeleteComponent(name string, typ ComponentType) bool {
	i := slices.IndexFunc(c.components, func(comp *Component) bool {
		return comp.Name == name
	})
	if i < 0 {
		c.log.Warn("hive: delete of unknown component",
			zap.String("component", name), zap.Stringer("type", typ))
		return false
	}
	comp := c.components[i]
	c.components = slices.Delete(c.components, i, i+1)
	for t := range c.listeners {
		c.Off(EventType(t), comp)
	}
	comp.owner = nil
	c.sorted = false
	return true
}

// --- Rendering ---

// paintOrder returns the components sorted by ZIndex. Ties keep
// registration order.
func (c *Canvas) paintOrder() []*Component {
	if !c.sorted || len(c.order) != len(c.components) {
		c.order = append(c.order[:0], c.components...)
		slices.SortStableFunc(c.order, func(a, b *Component) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
		c.sorted = true
	}
	return c.order
}

// Render paints every component in z-order onto the surface.
func (c *Canvas) Render() {
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}
	order := c.paintOrder()
	for _, comp := range order {
		comp.Render(c.surface)
	}
	if c.debug {
		c.debugLog(renderStats{
			renderTime: time.Since(t0),
			components: len(order),
			visible:    countVisible(order),
			animations: len(c.animations),
			timers:     len(c.timers),
		})
	}
}

// Clear erases the surface.
func (c *Canvas) Clear() {
	c.surface.Clear()
}

// Draw renders a full frame onto screen. When the canvas owns an
// EbitenSurface it is bound to screen first.
func (c *Canvas) Draw(screen *ebiten.Image) {
	if c.screen != nil {
		c.screen.Bind(screen)
	}
	c.Clear()
	c.Render()
	c.drawDebugOverlay(screen)
	c.flushScreenshots(screen)
}

// --- Frame loop ---

// Update polls pointer and keyboard input and then advances the canvas to
// the clock's current time. Call it from ebiten's Update.
func (c *Canvas) Update() {
	if len(c.injectQueue) == 0 {
		c.pollInput()
	}
	c.Tick(c.clock.Now())
}

// Tick advances the canvas to now without reading real input: it steps the
// test runner, replays injected input, registers finished asset loads,
// fires due timers and advances animations, in that order.
func (c *Canvas) Tick(now time.Time) {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()
	c.drainArrivals()
	c.runTimers(now)
	c.runAnimations(now)
}
