// Package session owns the terminal for the lifetime of one tracker run.
//
// Acquire switches the terminal into raw mode, the alternate screen and a
// hidden cursor; the returned Guard puts all three back in reverse order
// exactly once, whether the run ends by quit, I/O error, panic or signal.
// Run drives the single-threaded draw/step loop between the two.
package session
