package hive

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// renderStats holds per-frame timing and registry metrics.
// Only populated when the canvas runs in debug mode.
type renderStats struct {
	renderTime time.Duration
	components int
	visible    int
	animations int
	timers     int
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// render stats are logged at debug level and drawn over the frame.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// debugLog logs render stats and keeps them for the overlay.
func (c *Canvas) debugLog(stats renderStats) {
	c.lastStats = stats
	c.log.Debug("hive: frame",
		zap.Duration("render", stats.renderTime),
		zap.Int("components", stats.components),
		zap.Int("visible", stats.visible),
		zap.Int("animations", stats.animations),
		zap.Int("timers", stats.timers))
}

// drawDebugOverlay prints the last frame's stats in the bottom-left corner.
func (c *Canvas) drawDebugOverlay(screen *ebiten.Image) {
	if !c.debug || screen == nil {
		return
	}
	s := c.lastStats
	msg := fmt.Sprintf("render %v | %d/%d visible | anim %d | timers %d",
		s.renderTime.Round(time.Microsecond), s.visible, s.components, s.animations, s.timers)
	ebitenutil.DebugPrintAt(screen, msg, 4, screen.Bounds().Dy()-16)
}

func countVisible(comps []*Component) int {
	n := 0
	for _, c := range comps {
		if c.Visible {
			n++
		}
	}
	return n
}
