// Package game implements Bee Swat on top of the hive canvas engine: a bee
// hops around the canvas and the player tries to click it before it moves.
package game

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hive"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Component names used on the canvas.
const (
	NameBackground = "background"
	NameBee        = "bee"
	NameHUD        = "hud"
	NameBanner     = "banner"
	NamePause      = "pause"
	NamePauseLabel = "pause-label"
	NameSplat      = "splat"
)

// Timer and animation names.
const (
	timerHop  = "hop"
	animHop   = "bee-hop"
	animSplat = "splat"
)

// Paint order.
const (
	zBackground = 0
	zSplat      = 5
	zBee        = 10
	zHUD        = 20
	zPause      = 30
)

const (
	pauseSize     = 36
	splatRadius   = 28
	splatDuration = 350 * time.Millisecond
	maxHopTween   = 150 * time.Millisecond
)

var (
	colorHUD       = hive.ColorWhite
	colorOutline   = hive.Color{R: 0.1, G: 0.08, B: 0.02, A: 1}
	colorPause     = hive.Color{R: 0.15, G: 0.15, B: 0.2, A: 0.75}
	colorSplat     = hive.Color{R: 0.95, G: 0.85, B: 0.2, A: 0.9}
	colorHighlight = hive.Color{R: 1, G: 0.55, B: 0.1, A: 1}
)

// SessionOptions configures NewSession.
type SessionOptions struct {
	Logger *zap.Logger
	Sink   EventSink
	// BeeAsset and BackgroundAsset are paths in the canvas assets.
	// They default to "bee.svg" and "background.svg".
	BeeAsset        string
	BackgroundAsset string
	// OnReady runs once the assets are loaded and wired, before the title
	// screen shows.
	OnReady func(*Session)
}

// Session runs the game on a canvas. All methods belong to the loop thread.
type Session struct {
	cfg    Config
	canvas *hive.Canvas
	log    *zap.Logger
	sink   EventSink
	opts   SessionOptions

	id        uuid.UUID
	state     State
	stats     Stats
	graceUsed bool
	loadErr   error

	bee, background         *hive.Component
	hud, banner             *hive.Component
	pauseButton, pauseLabel *hive.Component
	splat                   *hive.Component
}

// NewSession prepares a session. Call Start to begin loading.
func NewSession(canvas *hive.Canvas, cfg Config, opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BeeAsset == "" {
		opts.BeeAsset = "bee.svg"
	}
	if opts.BackgroundAsset == "" {
		opts.BackgroundAsset = "background.svg"
	}
	return &Session{
		cfg:    cfg,
		canvas: canvas,
		log:    opts.Logger,
		sink:   opts.Sink,
		opts:   opts,
		state:  StateLoading,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Stats returns the current game's tally.
func (s *Session) Stats() Stats { return s.stats }

// ID identifies the current game. It changes every time a game starts.
func (s *Session) ID() uuid.UUID { return s.id }

// Err returns the asset failure that put the session in StateLoadFailed.
func (s *Session) Err() error { return s.loadErr }

// Bee returns the bee component once loaded.
func (s *Session) Bee() *hive.Component { return s.bee }

// PauseButton returns the pause button.
func (s *Session) PauseButton() *hive.Component { return s.pauseButton }

// Start creates the static components and begins loading the assets.
func (s *Session) Start() {
	w, h := float64(s.canvas.Width()), float64(s.canvas.Height())

	s.canvas.AddSprite(NameBackground, s.opts.BackgroundAsset, hive.SpriteOptions{
		ZIndex: zBackground,
		Scale:  hive.ScaleOptions{FitToCanvas: true},
	})
	s.canvas.AddVectorPath(NameBee, s.opts.BeeAsset, hive.VectorOptions{
		ZIndex:     zBee,
		Scale:      hive.ScaleOptions{ScaleFactor: s.cfg.BugScaleFactor},
		AutoDomain: true,
	})

	s.hud = s.canvas.AddText(NameHUD, "", hive.TextOptions{
		X: 12, Y: 10, ZIndex: zHUD, Outline: true,
		Style: []hive.StyleOption{hive.WithFill(colorHUD), hive.WithStroke(colorOutline), hive.WithFontSize(18)},
	})
	s.banner = s.canvas.AddText(NameBanner, "Loading...", hive.TextOptions{
		X: w / 2, Y: h/2 - 20, ZIndex: zHUD, Outline: true,
		Style: []hive.StyleOption{
			hive.WithFill(colorHUD), hive.WithStroke(colorOutline), hive.WithLineWidth(2),
			hive.WithFontSize(28), hive.WithAlign(hive.TextAlignCenter),
			hive.WithShadow(hive.ColorBlack.WithAlpha(0.5), 0, 3, 3),
		},
	})

	s.pauseButton = s.canvas.AddVectorShape(NamePause,
		hive.Shape{Kind: hive.ShapeRectangle, Width: pauseSize, Height: pauseSize},
		hive.ShapeOptions{
			X: w - pauseSize - 10, Y: 10, ZIndex: zPause,
			Style: []hive.StyleOption{hive.WithFill(colorPause), hive.WithStroke(colorHUD), hive.WithLineWidth(1)},
		})
	s.pauseLabel = s.canvas.AddText(NamePauseLabel, "II", hive.TextOptions{
		X: w - 10 - pauseSize/2, Y: 18, ZIndex: zPause + 1,
		Style: []hive.StyleOption{hive.WithFill(colorHUD), hive.WithFontSize(16), hive.WithAlign(hive.TextAlignCenter)},
	})
	s.pauseButton.Hide()
	s.pauseLabel.Hide()

	s.splat = s.canvas.AddCircle(NameSplat, splatRadius, hive.WithFill(colorSplat))
	s.splat.SetZIndex(zSplat)
	s.splat.Hide()

	s.canvas.OnKey(ebiten.KeyP, s.TogglePause)
	s.canvas.OnBlur(s.Pause)
	s.renderHUD()
}

// Update advances the loading state. Gameplay itself is driven by canvas
// callbacks. Call it every tick after the canvas has updated.
func (s *Session) Update() error {
	if s.state != StateLoading {
		return nil
	}
	ready, err := s.canvas.AssetsReady()
	if !ready {
		return nil
	}
	if err != nil {
		s.loadErr = err
		s.log.Error("game: assets failed to load", zap.Error(err))
		s.banner.SetText("Could not load the game.")
		s.setState(StateLoadFailed)
		return nil
	}
	if err := s.wireAssets(); err != nil {
		s.loadErr = err
		s.setState(StateLoadFailed)
		return nil
	}
	if s.opts.OnReady != nil {
		s.opts.OnReady(s)
	}
	s.toTitle()
	return nil
}

// wireAssets looks up the loaded components and registers their events.
func (s *Session) wireAssets() error {
	var err error
	if s.bee, err = s.canvas.GetComponent(hive.TypeVector, NameBee); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if s.background, err = s.canvas.GetComponent(hive.TypeSprite, NameBackground); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	s.canvas.On(hive.EventClick, s.bee, s.onBeeClick, s.onMissClick)
	s.canvas.WatchHover(s.bee, hive.HoverConfig{
		Poll: s.cfg.HoverPoll.Duration(),
		OnEnter: func() {
			s.bee.SaveStyle()
			s.bee.SetStyle(hive.WithStroke(colorHighlight), hive.WithLineWidth(3))
		},
		OnLeave: s.bee.RevertStyle,
	})
	return nil
}

// --- State transitions ---

func (s *Session) setState(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.exitState(prev)
	s.state = next
	s.log.Info("game: state changed",
		zap.Stringer("session", s.id), zap.Stringer("from", prev), zap.Stringer("to", next))
	s.publish(Event{Kind: EventStateChanged, Prev: prev})
	s.renderHUD()
}

// exitState cancels whatever the state being left had scheduled.
func (s *Session) exitState(st State) {
	switch st {
	case StatePlaying:
		s.canvas.ClearInterval(timerHop)
		s.showPauseButton(false)
	case StatePaused, StateTitle, StateGameOver:
		s.banner.Hide()
	}
}

func (s *Session) toTitle() {
	s.bee.SetPosition(float64(s.canvas.Width())/2-s.bee.Width/2, float64(s.canvas.Height())/2+20)
	s.bee.Show()
	s.banner.SetText("Click the bee to start")
	s.banner.Show()
	s.setState(StateTitle)
}

func (s *Session) startGame() {
	s.id = uuid.New()
	s.stats = Stats{
		Interval: s.cfg.BaseInterval.Duration(),
		Speed:    s.cfg.SpeedStep.Duration(),
		SpeedPct: 100,
	}
	s.graceUsed = false
	s.setState(StatePlaying)
	s.showPauseButton(true)
	s.moveBee()
	s.armHop(s.stats.Interval)
}

// Pause suspends a game in progress. No-op in any other state.
func (s *Session) Pause() {
	if s.state != StatePlaying {
		return
	}
	s.banner.SetText("Paused - click to resume")
	s.banner.Show()
	s.setState(StatePaused)
}

// Resume continues a paused game with a fresh hop delay.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.setState(StatePlaying)
	s.showPauseButton(true)
	s.armHop(s.stats.Interval)
}

// TogglePause switches between playing and paused.
func (s *Session) TogglePause() {
	switch s.state {
	case StatePlaying:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

func (s *Session) gameOver() {
	s.canvas.CancelAnimation(animHop)
	s.banner.SetText(fmt.Sprintf("Game over! %d hits, %d misses - click to continue",
		s.stats.Hits, s.stats.Misses))
	s.banner.Show()
	s.setState(StateGameOver)
}

// --- Pointer handlers ---

func (s *Session) onBeeClick(ev hive.PointerEvent) {
	switch s.state {
	case StateTitle:
		s.startGame()
	case StatePlaying:
		s.hit(ev)
	default:
		s.onAnyClick()
	}
}

func (s *Session) onMissClick(ev hive.PointerEvent) {
	switch s.state {
	case StatePlaying:
		s.miss(ev)
	default:
		s.onAnyClick()
	}
}

func (s *Session) onPauseClick(hive.PointerEvent) {
	s.Pause()
}

// showPauseButton toggles the button and its click registration together;
// the canvas still hit-tests hidden components.
func (s *Session) showPauseButton(show bool) {
	if !show {
		s.pauseButton.Hide()
		s.pauseLabel.Hide()
		s.canvas.Off(hive.EventClick, s.pauseButton)
		return
	}
	s.pauseButton.Show()
	s.pauseLabel.Show()
	s.canvas.On(hive.EventClick, s.pauseButton, s.onPauseClick, nil)
}

// onAnyClick handles clicks in states that only wait for a click.
func (s *Session) onAnyClick() {
	switch s.state {
	case StatePaused:
		s.Resume()
	case StateGameOver:
		s.toTitle()
	}
}

// --- Gameplay ---

func (s *Session) hit(ev hive.PointerEvent) {
	st := &s.stats
	st.Hits++
	st.Interval = max(st.Interval-st.Speed, s.cfg.MinInterval.Duration(), time.Millisecond)
	base := s.cfg.BaseInterval.Duration()
	st.Speed = max(time.Millisecond,
		time.Duration(math.Round(float64(s.cfg.SpeedStep.Duration())*float64(st.Interval)/float64(base))))
	st.SpeedPct = int(base * 100 / st.Interval)

	s.log.Debug("game: hit", zap.Stringer("session", s.id),
		zap.Int("hits", st.Hits), zap.Duration("interval", st.Interval))
	s.publish(Event{Kind: EventHit, X: ev.X, Y: ev.Y})
	s.playSplat(ev.X, ev.Y)
	s.hop()
}

func (s *Session) miss(ev hive.PointerEvent) {
	s.stats.Misses++
	s.publish(Event{Kind: EventMiss, X: ev.X, Y: ev.Y})
	if s.stats.Misses >= s.cfg.MaxMisses {
		s.gameOver()
		return
	}
	s.renderHUD()
}

// armHop schedules the next hop, replacing any pending one.
func (s *Session) armHop(d time.Duration) {
	s.canvas.ClearInterval(timerHop)
	s.canvas.AddTimeout(timerHop, d, s.onHopTimer)
}

// onHopTimer hops the bee, unless the pointer is on it and this hop has not
// been delayed yet, in which case the player gets one grace period.
func (s *Session) onHopTimer() {
	if s.state != StatePlaying {
		return
	}
	grace := s.cfg.GracePeriod.Duration()
	p := s.canvas.Pointer()
	if !s.graceUsed && grace > 0 && s.bee.IsPointInPath(p.X, p.Y) {
		s.graceUsed = true
		s.armHop(grace)
		return
	}
	s.hop()
}

func (s *Session) hop() {
	s.stats.Rounds++
	s.graceUsed = false
	if s.stats.Rounds >= s.cfg.MaxRounds {
		s.gameOver()
		return
	}
	x, y := s.moveBee()
	s.publish(Event{Kind: EventHop, X: x, Y: y})
	s.renderHUD()
	s.armHop(s.stats.Interval)
}

// moveBee tweens the bee to a random spot inside its domain and returns the
// target.
func (s *Session) moveBee() (float64, float64) {
	fromX, fromY := s.bee.X, s.bee.Y
	s.bee.RandomizePosition(hive.AxisBoth)
	toX, toY := s.bee.X, s.bee.Y
	s.bee.SetPosition(fromX, fromY)

	s.canvas.CancelAnimation(animHop)
	d := min(maxHopTween, s.stats.Interval/4)
	s.canvas.PlayTween(animHop, hive.TweenPosition(s.bee, toX, toY, d, ease.OutQuad))
	return toX, toY
}

func (s *Session) playSplat(x, y float64) {
	s.splat.SetPosition(x, y)
	s.splat.SetRadius(splatRadius / 4)
	s.splat.Show()
	s.canvas.CancelAnimation(animSplat)
	s.canvas.Animate(animSplat, splatDuration, func(f hive.Frame) {
		k := f.Eased(ease.OutCubic)
		s.splat.SetRadius(splatRadius/4 + k*splatRadius*3/4)
		s.splat.SetStyle(hive.WithFill(colorSplat.WithAlpha(colorSplat.A * (1 - k))))
	}, hive.OnComplete(func() {
		s.splat.Hide()
		s.splat.SetStyle(hive.WithFill(colorSplat))
	}))
}

func (s *Session) renderHUD() {
	if s.hud == nil {
		return
	}
	switch s.state {
	case StatePlaying, StatePaused, StateGameOver:
		st := s.stats
		s.hud.SetText(fmt.Sprintf("Hits %d   Misses %d/%d   Round %d/%d   Speed %d%%",
			st.Hits, st.Misses, s.cfg.MaxMisses, st.Rounds, s.cfg.MaxRounds, st.SpeedPct))
		s.hud.Show()
	default:
		s.hud.Hide()
	}
}

func (s *Session) publish(e Event) {
	if s.sink == nil {
		return
	}
	e.Session = s.id
	e.State = s.state
	e.Stats = s.stats
	s.sink.Publish(e)
}
