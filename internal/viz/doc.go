// Package viz is the terminal front end of pathviz.
//
// [App] is a Bubble Tea model that owns the grid, the interaction controller
// and the replay overlay. Mouse drags paint walls; a run locks editing, calls
// the algorithm service from a command, then replays the result on frame
// ticks until the timeline completes.
//
// Rendering is declarative: [Cells] derives one [Category] per cell from the
// grid and the overlay, and [RenderBoard] or [PlainBoard] draw them.
//
// # Key Bindings
//
//	v/enter - Visualize
//	c       - Clear grid
//	a/A     - Next/previous algorithm
//	+/-     - Faster/slower playback
//	t       - Cycle color themes
//	?       - Show help overlay
package viz
