// Package ecs bridges hive and Bee Swat into a [Donburi] world.
//
// [NewDonburiStore] forwards captured pointer events on components with an
// EntityID to [InteractionEventType]. [NewDonburiSink] publishes game session
// events to [GameEventType], and [TrackScores] keeps a running [Scoreboard]
// entity from them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	canvas.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.TrackScores(world)
//	session := game.NewSession(canvas, cfg, game.SessionOptions{Sink: ecs.NewDonburiSink(world)})
//
// Events are queued; call events.ProcessAllEvents(world) once per tick.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
