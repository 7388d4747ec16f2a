package hive

import (
	"slices"
	"testing"
	"time"
)

func TestWatchHover(t *testing.T) {
	c, step := clocked(t)
	box := c.AddRectangle("box", 20, 20)
	c.Render()

	var got []string
	c.WatchHover(box, HoverConfig{
		Poll:    10 * time.Millisecond,
		OnEnter: func() { got = append(got, "enter") },
		OnLeave: func() { got = append(got, "leave") },
	})

	c.DispatchMouseMove(5, 5)
	c.DispatchMouseMove(6, 6) // still inside, no second enter
	if !c.IntervalActive("hover:box") {
		t.Fatal("leave poll not running while inside")
	}
	step(10 * time.Millisecond)

	c.DispatchMouseMove(150, 50)
	if !slices.Equal(got, []string{"enter"}) {
		t.Fatalf("before poll: %v", got)
	}
	step(10 * time.Millisecond)
	if !slices.Equal(got, []string{"enter", "leave"}) {
		t.Errorf("after poll: %v", got)
	}
	if c.IntervalActive("hover:box") {
		t.Error("poll still running after leave")
	}

	c.DispatchMouseMove(1, 1)
	if !slices.Equal(got, []string{"enter", "leave", "enter"}) {
		t.Errorf("re-entry: %v", got)
	}
}

func TestWatchHoverLeavesOnHide(t *testing.T) {
	c, step := clocked(t)
	box := c.AddRectangle("box", 20, 20)
	c.Render()
	left := false
	c.WatchHover(box, HoverConfig{OnLeave: func() { left = true }})

	c.DispatchMouseMove(5, 5)
	box.Hide()
	step(DefaultHoverPoll)
	if !left {
		t.Error("hiding the component did not end the hover")
	}
}

func TestWatchHoverCancel(t *testing.T) {
	c, _ := clocked(t)
	box := c.AddRectangle("box", 20, 20)
	c.Render()
	enters, leaves := 0, 0
	cancel := c.WatchHover(box, HoverConfig{
		OnEnter: func() { enters++ },
		OnLeave: func() { leaves++ },
	})

	c.DispatchMouseMove(5, 5)
	cancel()
	if leaves != 1 {
		t.Errorf("cancel while inside: leaves = %d, want 1", leaves)
	}
	cancel()
	c.DispatchMouseMove(50, 50)
	c.DispatchMouseMove(5, 5)
	if enters != 1 || leaves != 1 {
		t.Errorf("after cancel: enters=%d leaves=%d", enters, leaves)
	}
}
