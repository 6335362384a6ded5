package report

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Progress is a spinner on a terminal stream. On anything that is not a
// terminal it does nothing, so piped output stays clean.
type Progress struct {
	s *spinner.Spinner
}

// StartProgress starts a spinner with message on w when w is a terminal.
func StartProgress(w io.Writer, message string) *Progress {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f.Fd()) {
		return &Progress{}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + message
	s.Start()
	return &Progress{s: s}
}

// Stop halts the spinner and clears its line. Safe on a no-op Progress.
func (p *Progress) Stop() {
	if p == nil || p.s == nil {
		return
	}
	p.s.Stop()
}

// Active reports whether a spinner is drawing.
func (p *Progress) Active() bool {
	return p != nil && p.s != nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
