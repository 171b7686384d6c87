// Package field renders the wind field: a grid of short line segments whose
// angle, length and stroke weight follow a 3-D noise field sampled at each
// cell and the current frame.
//
// The package is split into pure geometry and a small lifecycle:
//
//   - [Tunables]: immutable process-wide configuration
//   - [CellSizeFor] and [ComputeLayout]: responsive grid layout
//   - [Tunables.Segment]: noise-to-visual mapping for one cell
//   - [Instance]: one field per drawing surface, with its frame counter and
//     play state
//
// # Lifecycle
//
// An instance that is not configured to animate renders exactly once and
// stays [Static]. An animating instance starts [Paused], subscribes to a
// visibility provider and moves between [Paused] and [Playing] as the
// provider reports the surface entering or leaving the viewport:
//
//	inst, err := field.New(tun, opts, deps)
//	if err != nil {
//	    return // not initialised, nothing drawn
//	}
//	inst.Start()
//	// host loop:
//	inst.Tick()
//
// # Thread Safety
//
// Instances are NOT safe for concurrent use. The host loop, visibility
// callbacks and resize events must all run on one goroutine.
package field
