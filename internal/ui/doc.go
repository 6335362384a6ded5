// Package ui provides the Bubble Tea terminal interface for logscope.
//
// # Layout
//
//   - Header: name, phase badge (ready, analyzing, done, failed) and service URL
//   - Editor: a bubbles textarea holding the input buffer
//   - Status line: line count, truncation hint, submit availability, timing
//   - Result pane: a bubbles viewport with the diagnosis and suggested fix, or
//     the failure message; a spinner replaces it while a request is in flight
//   - Footer: short key help; f1 opens the full help overlay
//
// # Data Flow
//
// Every editor change is mirrored into session.State. ctrl+s calls
// Dispatcher.Begin synchronously inside Update, so a second ctrl+s in the same
// frame is already rejected, then hands the Ticket to a command that calls
// Dispatcher.Run off the UI goroutine. When Run returns, an outcomeMsg triggers a
// re-render. Everything on screen is derived from present.Derive on the current
// snapshot; the model keeps no copy of the result.
//
// # Themes
//
// Dracula and Slate are built in. ctrl+t cycles them and the choice is written
// to the prefs file.
package ui
