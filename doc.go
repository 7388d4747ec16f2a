// Package hive is a small 2D canvas component engine for [Ebitengine].
//
// A [Canvas] owns a drawing [Surface] and a flat registry of [Component]
// values: text, procedural or SVG-loaded vectors, and sprites. Each component
// carries its own position, size, z-index, placement domain and [Style].
// The canvas paints them in z-order, hit-tests vectors against the path of
// their last render, and drives named animations and timers from a [Clock].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	canvas := hive.NewCanvas(nil, hive.CanvasConfig{Width: 640, Height: 480})
//	box := canvas.AddRectangle("box", 40, 40, hive.WithFill(hive.ColorWhite))
//	canvas.On(hive.EventClick, box, func(hive.PointerEvent) {
//		box.RandomizePosition(hive.AxisBoth)
//	}, nil)
//	hive.Run(canvas, hive.RunConfig{Title: "My Game"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Canvas.Update] and [Canvas.Draw] directly.
//
// # Events
//
// [Canvas.On] registers a vector for clicks or pointer moves. Targets are
// tried in registration order, not z-order: the first whose path contains
// the pointer captures the event. When none does, every target's uncaptured
// callback runs instead.
//
// # Time
//
// [Canvas.Animate] and [Canvas.AddInterval] are keyed by name; starting a
// name that is already running reuses the existing run. [Canvas.Tick]
// advances both from an explicit timestamp, so tests drive them with a
// [ManualClock].
//
// # Assets
//
// [Canvas.AddSprite] and [Canvas.AddVectorPath] read from an [io/fs.FS],
// decode in the background and register the component on the loop thread.
// They return a [Future]; [Canvas.AssetsReady] joins every load started so
// far.
//
// Tweens use [gween]. Interaction events can be forwarded to a [Donburi]
// world through the adapter in hive/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package hive
