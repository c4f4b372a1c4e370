// Package viz provides the interactive terminal view for a running
// simulation, built on Bubble Tea.
//
// The view plots the total energy history, an x-y projection of the
// particles drawn on a braille [Canvas], and the latest step report.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Double/halve steps per frame
//	Q     - Quit
package viz
