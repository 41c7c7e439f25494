// Package viz renders material point runs in the terminal.
//
// [LiveModel] is a Bubble Tea program that drives one increment per tick and
// shows the axial stress history, the stress-strain loop on a Braille
// [Canvas] and the solver statistics of the last step. [RunMenu] opens a
// preset picker in front of it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Restart from the unloaded state
//	+/-   - Steps per frame
//	?     - Show help overlay
//	Q     - Quit
package viz
