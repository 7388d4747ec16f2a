package hive

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefresh is how often the FPS counter text is rewritten.
const fpsRefresh = 500 * time.Millisecond

// AddFPSCounter adds a text component showing the current FPS and TPS. It is
// refreshed by an interval named "fps:"+name and drawn above everything else
// unless opts.ZIndex says otherwise.
func (c *Canvas) AddFPSCounter(name string, opts TextOptions) *Component {
	if opts.ZIndex == 0 {
		opts.ZIndex = 1 << 20
	}
	comp := c.AddText(name, fpsLabel(), opts)
	c.AddInterval("fps:"+name, fpsRefresh, func(cancel CancelFunc, _ int) {
		if comp.owner == nil {
			cancel()
			return
		}
		comp.SetText(fpsLabel())
	})
	return comp
}

func fpsLabel() string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}
