// Package viz shows a wind field in the terminal.
//
// The live view lays out a scrollable page with one field container between
// filler rows, the way the field sits inside a web page:
//
//   - [Model]: Bubble Tea model driving one [field.Instance]
//   - the container rectangle against the terminal viewport feeds a
//     [visibility.Observer], so the field plays only while scrolled into view
//   - terminal focus events pause and resume playback
//
// # Key Bindings
//
//	↑/k ↓/j      - Scroll one row
//	pgup/pgdown  - Scroll half a screen
//	home/end     - Jump to top or bottom
//	p            - Next preset
//	t            - Cycle color themes
//	?            - Toggle full help
//	q            - Quit
package viz
