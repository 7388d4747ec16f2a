package game

import (
	"math/rand/v2"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hive"
	"github.com/stretchr/testify/require"
)

const (
	testBeeSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
<path d="M0 0 L100 0 L100 100 L0 100 Z" fill="#f5c518"/></svg>`
	testBackgroundSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="80" height="60">
<path d="M0 0 H80 V60 H0 Z" fill="#7ec850"/></svg>`
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"bee.svg":        {Data: []byte(testBeeSVG)},
		"background.svg": {Data: []byte(testBackgroundSVG)},
	}
}

type harness struct {
	t       *testing.T
	clock   *hive.ManualClock
	canvas  *hive.Canvas
	session *Session
	events  []Event
}

func newHarness(t *testing.T, cfg Config, assets fstest.MapFS) *harness {
	t.Helper()
	h := &harness{t: t, clock: hive.NewManualClock(time.Unix(1_700_000_000, 0))}
	h.canvas = hive.NewCanvas(nil, hive.CanvasConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Clock:       h.clock,
		Assets:      assets,
		LoadTimeout: cfg.LoadTimeout.Duration(),
		Rand:        rand.New(rand.NewPCG(1, 2)),
	})
	h.session = NewSession(h.canvas, cfg, SessionOptions{
		Sink: EventSinkFunc(func(e Event) { h.events = append(h.events, e) }),
	})
	h.session.Start()
	h.waitLoaded()
	return h
}

// waitLoaded ticks until the loader goroutines have delivered.
func (h *harness) waitLoaded() {
	h.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.session.State() == StateLoading {
		if time.Now().After(deadline) {
			h.t.Fatal("assets never loaded")
		}
		h.canvas.Tick(h.clock.Now())
		require.NoError(h.t, h.session.Update())
		time.Sleep(time.Millisecond)
	}
	h.canvas.Render()
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.canvas.Tick(h.clock.Now())
	require.NoError(h.t, h.session.Update())
	h.canvas.Render()
}

// settle lets the current hop tween finish.
func (h *harness) settle() {
	h.advance(time.Millisecond)
	h.advance(maxHopTween + 10*time.Millisecond)
}

func (h *harness) beeCenter() (float64, float64) {
	b := h.session.Bee()
	return b.X + b.Width/2, b.Y + b.Height/2
}

func (h *harness) clickBee() {
	h.canvas.Render()
	h.canvas.DispatchClick(h.beeCenter())
}

// clickMiss clicks a corner that neither the bee nor the pause button covers.
func (h *harness) clickMiss() {
	h.canvas.Render()
	for _, p := range []hive.Vec2{{X: 2, Y: 598}, {X: 798, Y: 598}, {X: 2, Y: 2}} {
		if !h.session.Bee().IsPointInPath(p.X, p.Y) {
			h.canvas.DispatchClick(p.X, p.Y)
			return
		}
	}
	h.t.Fatal("no free corner to miss on")
}

func (h *harness) start() {
	h.t.Helper()
	require.Equal(h.t, StateTitle, h.session.State())
	h.clickBee()
	require.Equal(h.t, StatePlaying, h.session.State())
	h.settle()
}

func (h *harness) count(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestSessionLoadsToTitle(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())

	require.Equal(t, StateTitle, h.session.State())
	require.NoError(t, h.session.Err())

	bee := h.session.Bee()
	require.NotNil(t, bee)
	require.Equal(t, hive.TypeVector, bee.Type())
	// 0.08 * (800+600) / (100+100)
	require.InDelta(t, 56, bee.Width, 1e-9)
	require.InDelta(t, 56, bee.Height, 1e-9)

	bg, err := h.canvas.GetComponent(hive.TypeSprite, NameBackground)
	require.NoError(t, err)
	require.InDelta(t, 800, bg.Width, 1e-9)
	require.InDelta(t, 600, bg.Height, 1e-9)

	require.Equal(t, 1, h.count(EventStateChanged))
	require.Equal(t, StateLoading, h.events[0].Prev)
	require.Equal(t, StateTitle, h.events[0].State)
}

func TestSessionLoadFailure(t *testing.T) {
	assets := testAssets()
	delete(assets, "bee.svg")
	h := newHarness(t, DefaultConfig(), assets)

	require.Equal(t, StateLoadFailed, h.session.State())
	require.Error(t, h.session.Err())
	require.Nil(t, h.session.Bee())
}

func TestSessionStartIssuesNewID(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	first := h.session.ID()
	require.NotZero(t, first)
	require.Equal(t, 2*time.Second, h.session.Stats().Interval)
	require.Equal(t, 100, h.session.Stats().SpeedPct)
	require.True(t, h.canvas.IntervalActive(timerHop))
	require.True(t, h.session.PauseButton().IsVisible())
}

func TestSessionHitSpeedsUp(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	h.clickBee()
	st := h.session.Stats()
	require.Equal(t, 1, st.Hits)
	require.Equal(t, 1, st.Rounds)
	require.Equal(t, 1900*time.Millisecond, st.Interval)
	require.Equal(t, 95*time.Millisecond, st.Speed)
	require.Equal(t, 105, st.SpeedPct)
	require.Equal(t, 1, h.count(EventHit))
	require.Equal(t, 1, h.count(EventHop))

	h.settle()
	h.clickBee()
	st = h.session.Stats()
	require.Equal(t, 2, st.Hits)
	require.Equal(t, 1805*time.Millisecond, st.Interval)
	require.Less(t, st.Speed, 95*time.Millisecond)
}

func TestSessionIntervalFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseInterval = Millis(500 * time.Millisecond)
	cfg.SpeedStep = Millis(200 * time.Millisecond)
	cfg.MinInterval = Millis(300 * time.Millisecond)
	h := newHarness(t, cfg, testAssets())
	h.start()

	for range 5 {
		h.clickBee()
		require.GreaterOrEqual(t, h.session.Stats().Interval, 300*time.Millisecond)
		require.Positive(t, h.session.Stats().Speed)
		h.settle()
	}
	require.Equal(t, 300*time.Millisecond, h.session.Stats().Interval)
}

func TestSessionMissesEndGame(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	for i := 1; i < 5; i++ {
		h.clickMiss()
		require.Equal(t, i, h.session.Stats().Misses)
		require.Equal(t, StatePlaying, h.session.State())
	}
	h.clickMiss()
	require.Equal(t, StateGameOver, h.session.State())
	require.Equal(t, 5, h.count(EventMiss))
	require.False(t, h.canvas.IntervalActive(timerHop))

	// Further clicks are not misses; the first one returns to the title.
	h.clickMiss()
	require.Equal(t, StateTitle, h.session.State())
	require.Equal(t, 5, h.count(EventMiss))
}

func TestSessionRoundsEndGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRounds = 3
	cfg.GracePeriod = 0
	h := newHarness(t, cfg, testAssets())
	h.start()

	for i := 1; i < 3; i++ {
		h.advance(2 * time.Second)
		require.Equal(t, i, h.session.Stats().Rounds)
		require.Equal(t, StatePlaying, h.session.State())
	}
	h.advance(2 * time.Second)
	require.Equal(t, StateGameOver, h.session.State())
	require.Equal(t, 3, h.session.Stats().Rounds)
}

func TestSessionHopMovesBeeWithinDomain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GracePeriod = 0
	h := newHarness(t, cfg, testAssets())
	h.start()

	bee := h.session.Bee()
	for range 10 {
		h.advance(2 * time.Second)
		h.settle()
		require.GreaterOrEqual(t, bee.X, bee.Domain[0])
		require.GreaterOrEqual(t, bee.Y, bee.Domain[1])
		require.LessOrEqual(t, bee.X, bee.Domain[2])
		require.LessOrEqual(t, bee.Y, bee.Domain[3])
		require.LessOrEqual(t, bee.X+bee.Width, 800.0)
		require.LessOrEqual(t, bee.Y+bee.Height, 600.0)
	}
}

func TestSessionGracePeriod(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	h.canvas.DispatchMouseMove(h.beeCenter())
	h.advance(1850 * time.Millisecond)
	require.Equal(t, 0, h.session.Stats().Rounds, "hop delayed while hovering")

	h.advance(310 * time.Millisecond)
	require.Equal(t, 1, h.session.Stats().Rounds)
}

func TestSessionHoverHighlight(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	bee := h.session.Bee()
	before := bee.Style()

	h.canvas.DispatchMouseMove(h.beeCenter())
	require.True(t, bee.HasSavedStyle())
	require.NotEqual(t, before, bee.Style())

	h.canvas.DispatchMouseMove(1, 1)
	h.advance(60 * time.Millisecond)
	require.False(t, bee.HasSavedStyle())
	require.Equal(t, before, bee.Style())
}

func TestSessionPauseAndResume(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	h.canvas.InjectKey(ebiten.KeyP)
	h.advance(time.Millisecond)
	require.Equal(t, StatePaused, h.session.State())
	require.False(t, h.canvas.IntervalActive(timerHop))
	require.False(t, h.session.PauseButton().IsVisible())

	h.advance(10 * time.Second)
	require.Equal(t, 0, h.session.Stats().Rounds)

	// Any click resumes without counting as a hit or a miss.
	h.clickMiss()
	require.Equal(t, StatePlaying, h.session.State())
	require.Equal(t, 0, h.session.Stats().Misses)
	require.True(t, h.canvas.IntervalActive(timerHop))

	h.canvas.InjectBlur()
	h.advance(time.Millisecond)
	require.Equal(t, StatePaused, h.session.State())

	h.session.TogglePause()
	require.Equal(t, StatePlaying, h.session.State())
}

func TestSessionPauseButton(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()

	b := h.session.PauseButton()
	h.canvas.Render()
	h.canvas.DispatchClick(b.X+b.Width/2, b.Y+b.Height/2)
	require.Equal(t, StatePaused, h.session.State())
	require.Equal(t, 0, h.session.Stats().Misses)
}

func TestSessionNewGameResetsStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMisses = 1
	h := newHarness(t, cfg, testAssets())
	h.start()
	first := h.session.ID()

	h.clickMiss()
	require.Equal(t, StateGameOver, h.session.State())
	h.clickMiss()
	require.Equal(t, StateTitle, h.session.State())

	h.start()
	require.NotEqual(t, first, h.session.ID())
	require.Equal(t, Stats{Interval: 2 * time.Second, Speed: 100 * time.Millisecond, SpeedPct: 100},
		h.session.Stats())
}

func TestSessionEventsCarrySession(t *testing.T) {
	h := newHarness(t, DefaultConfig(), testAssets())
	h.start()
	h.clickBee()

	id := h.session.ID()
	for _, e := range h.events[1:] {
		require.Equal(t, id, e.Session, e.Kind.String())
	}
	last := h.events[len(h.events)-1]
	require.Equal(t, EventHop, last.Kind)
	require.Equal(t, 1, last.Stats.Hits)
}

func TestSessionOnReady(t *testing.T) {
	clock := hive.NewManualClock(time.Unix(0, 0))
	canvas := hive.NewCanvas(nil, hive.CanvasConfig{Width: 800, Height: 600, Clock: clock, Assets: testAssets()})
	var readyState State
	var calls int
	s := NewSession(canvas, DefaultConfig(), SessionOptions{
		OnReady: func(s *Session) {
			calls++
			readyState = s.State()
			require.NotNil(t, s.Bee())
		},
	})
	s.Start()
	h := &harness{t: t, clock: clock, canvas: canvas, session: s}
	h.waitLoaded()

	require.Equal(t, 1, calls)
	require.Equal(t, StateLoading, readyState)
	require.Equal(t, StateTitle, s.State())
}
