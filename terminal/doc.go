// Package terminal is the tracker's view of a character terminal: raw input
// mode, alternate screen, cursor visibility, colored text output flushed once
// per frame, and a blocking one-event-at-a-time input reader.
//
// Two implementations satisfy Terminal:
//   - ANSI drives the tty directly with escape sequences; raw mode through
//     golang.org/x/term, polling and window size through golang.org/x/sys/unix.
//   - Tcell adapts a tcell.Screen, including tcell's simulation screen.
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
