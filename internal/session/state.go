package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/five82/logscope/internal/analysis"
)

// Phase is the lifecycle position of the current analysis attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyInput rejects a submission whose buffer is blank after trimming.
	ErrEmptyInput = errors.New("input is empty")
	// ErrAlreadyInFlight rejects a submission while another one is pending.
	ErrAlreadyInFlight = errors.New("analysis already in flight")
)

// Snapshot is a copy of the session state at one instant.
type Snapshot struct {
	Input       string
	Phase       Phase
	Outcome     analysis.Outcome // meaningful only when Phase == PhaseCompleted
	Attempt     uint64
	StartedAt   time.Time
	CompletedAt time.Time
}

// CanSubmit reports whether a submission would be accepted.
func (s Snapshot) CanSubmit() bool {
	return canSubmit(s.Input, s.Phase)
}

// Elapsed returns how long the current or last attempt took.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if s.Phase == PhaseCompleted && !s.CompletedAt.IsZero() {
		return s.CompletedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

// State is the single source of truth for one client session. The zero value is
// an idle session with an empty buffer.
type State struct {
	mu          sync.RWMutex
	input       string
	phase       Phase
	outcome     analysis.Outcome
	attempt     uint64
	startedAt   time.Time
	completedAt time.Time
}

// SetInput replaces the buffer unconditionally, including while a request is in flight.
func (s *State) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the latest buffer content.
func (s *State) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// CanSubmit reports whether the buffer is non-blank and no request is in flight.
func (s *State) CanSubmit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return canSubmit(s.input, s.phase)
}

// Outcome returns the outcome of the completed attempt. It reports false while idle
// or submitting.
func (s *State) Outcome() (analysis.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase != PhaseCompleted {
		return analysis.Outcome{}, false
	}
	return s.outcome, true
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Input:       s.input,
		Phase:       s.phase,
		Outcome:     s.outcome,
		Attempt:     s.attempt,
		StartedAt:   s.startedAt,
		CompletedAt: s.completedAt,
	}
}

// begin moves the session into PhaseSubmitting and returns the attempt number and
// the buffer content it captured.
func (s *State) begin(now time.Time) (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting {
		return 0, "", ErrAlreadyInFlight
	}
	if strings.TrimSpace(s.input) == "" {
		return 0, "", ErrEmptyInput
	}

	s.attempt++
	s.phase = PhaseSubmitting
	s.outcome = analysis.Outcome{}
	s.startedAt = now
	s.completedAt = time.Time{}
	return s.attempt, s.input, nil
}

// complete lands the given attempt in PhaseCompleted. Results for anything other
// than the pending attempt are dropped.
func (s *State) complete(attempt uint64, outcome analysis.Outcome, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSubmitting || attempt != s.attempt {
		return false
	}
	s.phase = PhaseCompleted
	s.outcome = outcome
	s.completedAt = now
	return true
}

func canSubmit(input string, phase Phase) bool {
	return phase != PhaseSubmitting && strings.TrimSpace(input) != ""
}
