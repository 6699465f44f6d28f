// Package diorama is the interaction core of a clickable 3D room, driven by
// [Ebitengine].
//
// A loaded asset graph is classified once by naming convention: fans spin,
// clock hands follow the wall clock, buttons grow under the pointer, social
// buttons open links, and so on. After that, every frame runs the same
// pipeline: sample the pointer, cast a ray through the camera, resolve the
// topmost hit, update the hover state, dispatch clicks, then advance the
// procedural animation and the tweens.
//
// # Quick start
//
//	root, err := diorama.LoadGraph("room.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := diorama.NewScene(nil)
//	if err := scene.Ready(root); err != nil {
//		log.Fatal(err)
//	}
//	scene.OnAction(func(e diorama.Event) {
//		if e.Action == diorama.ActionOpenLink {
//			openBrowser(e.URL)
//		}
//	})
//	diorama.Run(scene, diorama.RunConfig{Title: "Room", Width: 1280, Height: 720})
//
// For full control, call [Scene.Enter] once the loading screen is dismissed,
// then [Scene.Tick] from your own Update and [Scene.Draw] from Draw.
//
// # Naming convention
//
// [Classify] matches node names against substring tokens ("Hover",
// "Raycaster", "Pointer", "Button", "Fan_", "Hour_Hand", ...) and records the
// resulting roles on each [Node]. The tokens that name links, flame anchors,
// texture sets, and fan groups come from the [Profile], which can be loaded
// from YAML with [LoadProfile].
//
// # Animation
//
// Tweens go through the [Tweener] interface. The default [Animator] is backed
// by [gween]; tests substitute a recording fake. A new tween on a node
// property replaces the one in flight, so hover enter and exit never fight.
// Reveal sequences are built with [Timeline].
//
// # Events
//
// The scene emits [Event] values for hover changes, actions (links, modals,
// the button sound), cursor changes, and theme or mute toggles. Register
// callbacks with [Scene.On] or forward everything to an [EventSink]; the
// ecs sub-module publishes them into a [Donburi] world.
//
// # Testing
//
// [Scene.InjectMove], [Scene.InjectClick] and [Scene.InjectTap] queue
// synthetic input in screen coordinates. A [TestRunner] plays a YAML script
// of input, waits, and screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package diorama
