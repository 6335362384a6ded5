// Package present derives what the view shows from a session snapshot.
//
// Derive is a pure function: no state, no side effects, no clock. Everything the
// terminal UI and the headless report render goes through it.
package present

import (
	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/session"
)

// View is the projection of one session snapshot.
type View struct {
	SubmitEnabled bool
	Loading       bool

	// At most one of Result and Error is non-nil.
	Result *ResultPanel
	Error  *ErrorPanel

	LineCount int
	Truncated bool // buffer is longer than analysis.MaxLines
}

// ResultPanel is the diagnosis block and the optional suggestion block.
type ResultPanel struct {
	Explanation string
	Suggestion  *string
}

// ShowSuggestion reports whether the suggestion block is rendered.
func (r ResultPanel) ShowSuggestion() bool {
	return r.Suggestion != nil
}

// ErrorPanel carries the failure reason.
type ErrorPanel struct {
	Message string
}

// Derive projects a snapshot into a View.
func Derive(s session.Snapshot) View {
	v := View{
		SubmitEnabled: s.CanSubmit(),
		Loading:       s.Phase == session.PhaseSubmitting,
		LineCount:     analysis.CountLines(s.Input),
		Truncated:     analysis.ExceedsLimit(s.Input),
	}

	if s.Phase != session.PhaseCompleted {
		return v
	}

	switch s.Outcome.Kind {
	case analysis.OutcomeSuccess:
		v.Result = &ResultPanel{
			Explanation: s.Outcome.Diagnosis.Explanation,
			Suggestion:  s.Outcome.Diagnosis.Suggestion,
		}
	case analysis.OutcomeFailure:
		v.Error = &ErrorPanel{Message: s.Outcome.Message}
	}
	return v
}
