// Package app is the composition root for logscope.
//
// Both entry points share one bootstrap:
//
//  1. Load ~/.config/logscope/config.toml, .env and LOGSCOPE_* overrides
//  2. Open the rotating JSON log file
//  3. Build the analysis client for the configured service URL
//
// Run then loads UI preferences, optionally prefills the editor from a log file
// and hands a session.Dispatcher to the Bubble Tea UI, blocking until the user
// quits. Analyze reads a file or stdin, submits it once through the same
// Dispatcher, prints the report and returns ErrAnalysisFailed on a failure
// outcome so the command can exit non-zero.
//
// Errors from bootstrap are fatal and returned. Failures of the analysis itself
// are outcomes, not errors: the TUI shows them and Analyze reports them.
package app
