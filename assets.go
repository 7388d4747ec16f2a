package hive

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"
)

// arrivalQueue hands finished loads from loader goroutines to the loop
// thread.
type arrivalQueue struct {
	mu    sync.Mutex
	items []func()
}

func (q *arrivalQueue) push(fn func()) {
	q.mu.Lock()
	q.items = append(q.items, fn)
	q.mu.Unlock()
}

func (q *arrivalQueue) drain() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// assetLoad tracks an in-flight load for timeout enforcement.
type assetLoad struct {
	src      string
	future   *Future[*Component]
	deadline time.Time
}

// AddSprite starts loading a PNG, JPEG or SVG image from the canvas assets
// and returns a future resolved with the registered sprite. Decoding runs in
// the background; the component is created and registered on the loop
// thread during a later Tick, immediately before the future resolves.
func (c *Canvas) AddSprite(name, src string, opts SpriteOptions) *Future[*Component] {
	canvas := c.Size()
	return c.load(src, func(data []byte) (func() *Component, error) {
		decoded, err := decodeSprite(src, data)
		if err != nil {
			return nil, err
		}
		return func() *Component {
			comp := newComponent(c, name, TypeSprite)
			sprite, size := decoded.build(src, canvas, opts.Scale)
			comp.Sprite = sprite
			comp.Width, comp.Height = size.Width, size.Height
			comp.X, comp.Y = opts.X, opts.Y
			comp.ZIndex = opts.ZIndex
			if opts.AutoDomain {
				comp.SetAutoDomain()
			}
			return comp
		}, nil
	})
}

// AddVectorPath loads an SVG document and returns a future resolved with a
// registered path vector. The first <path> element becomes the vector's
// outline, scaled per opts.Scale against the document's declared size. The
// path's fill attribute seeds the style's fill before opts.Style applies.
func (c *Canvas) AddVectorPath(name, src string, opts VectorOptions) *Future[*Component] {
	canvas := c.Size()
	return c.load(src, func(data []byte) (func() *Component, error) {
		shape, err := ParseSVG(data)
		if err != nil {
			return nil, err
		}
		orig := Size{Width: shape.Width, Height: shape.Height}
		size, k := scaleFor(orig, canvas, opts.Scale)
		return func() *Component {
			comp := newComponent(c, name, TypeVector)
			comp.Vector = &VectorData{
				Shape:    ShapePath,
				Source:   src,
				Original: orig,
				Scale:    k,
				base:     shape.Path,
			}
			comp.Width, comp.Height = size.Width, size.Height
			comp.style.Fill = shape.Fill
			comp.SetStyle(opts.Style...)
			comp.X, comp.Y = opts.X, opts.Y
			comp.ZIndex = opts.ZIndex
			if opts.AutoDomain {
				comp.SetAutoDomain()
			}
			return comp
		}, nil
	})
}

// load reads src in a goroutine, decodes it there and queues the returned
// constructor for the loop thread.
func (c *Canvas) load(src string, decode func([]byte) (func() *Component, error)) *Future[*Component] {
	fut := NewFuture[*Component]()
	c.pending.Add(fut)

	if c.assets == nil {
		fut.Fail(fmt.Errorf("hive: load %q: no asset file system configured", src))
		return fut
	}

	ld := &assetLoad{src: src, future: fut}
	if c.loadTimeout > 0 {
		ld.deadline = c.clock.Now().Add(c.loadTimeout)
	}
	c.loads = append(c.loads, ld)

	fsys := c.assets
	go func() {
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			fut.Fail(fmt.Errorf("hive: load %q: %w", src, err))
			return
		}
		build, err := decode(data)
		if err != nil {
			fut.Fail(fmt.Errorf("hive: load %q: %w", src, err))
			return
		}
		c.arrivals.push(func() {
			if _, _, settled := fut.Result(); settled {
				return
			}
			comp := build()
			if fut.Resolve(comp) {
				c.register(comp)
			}
		})
	}()
	return fut
}

// drainArrivals registers every load that finished since the last tick and
// fails loads that have outlived their deadline.
func (c *Canvas) drainArrivals() {
	for _, fn := range c.arrivals.drain() {
		fn()
	}
	if len(c.loads) == 0 {
		return
	}
	now := c.clock.Now()
	kept := c.loads[:0]
	for _, ld := range c.loads {
		if _, err, settled := ld.future.Result(); settled {
			if err != nil {
				c.log.Error("hive: asset load failed", zap.String("src", ld.src), zap.Error(err))
			}
			continue
		}
		if !ld.deadline.IsZero() && !now.Before(ld.deadline) {
			err := fmt.Errorf("hive: load %q: %w", ld.src, ErrLoadTimeout)
			ld.future.Fail(err)
			c.log.Error("hive: asset load failed", zap.String("src", ld.src), zap.Error(err))
			continue
		}
		kept = append(kept, ld)
	}
	c.loads = kept
}

// AssetsReady reports, without blocking, whether every load started so far
// has settled, along with the first failure in start order.
func (c *Canvas) AssetsReady() (bool, error) {
	return c.pending.Ready()
}

// WaitAssets blocks until every load started so far settles, returning early
// with the first failure to arrive. AssetsReady instead reports the first
// failure in start order. Loads only complete while the loop thread keeps ticking, so
// WaitAssets must be called from another goroutine. Safe for concurrent use.
func (c *Canvas) WaitAssets(ctx context.Context) error {
	return c.pending.Wait(ctx)
}
