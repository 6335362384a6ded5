// Package report renders the outcome of a headless analysis for the terminal or
// for scripts: colored human text, JSON or YAML. It also owns the stderr spinner
// shown while the request is in flight.
package report
