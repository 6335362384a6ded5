package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/logscope/internal/analysis"
)

// Ticket identifies one accepted submission between Begin and Run.
type Ticket struct {
	Attempt   uint64
	Request   analysis.Request
	Truncated bool
	StartedAt time.Time
}

// Dispatcher owns the Idle|Completed -> Submitting -> Completed transition.
type Dispatcher struct {
	state    *State
	analyzer analysis.Analyzer
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewDispatcher wires a dispatcher to the session state it mutates and the
// analyzer it calls. A nil logger discards log output.
func NewDispatcher(state *State, analyzer analysis.Analyzer, logger *zap.Logger) *Dispatcher {
	if state == nil {
		state = &State{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		state:    state,
		analyzer: analyzer,
		logger:   logger.Named("dispatcher"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// State returns the session state owned by the dispatcher.
func (d *Dispatcher) State() *State {
	return d.state
}

// Begin accepts a submission if the preconditions hold: it flips the session into
// PhaseSubmitting, clears the previous outcome and captures the truncated request.
// Rejections return ErrEmptyInput or ErrAlreadyInFlight and change nothing.
func (d *Dispatcher) Begin() (Ticket, error) {
	started := d.now()
	attempt, input, err := d.state.begin(started)
	if err != nil {
		d.logger.Debug("submission rejected", zap.Error(err))
		return Ticket{}, err
	}

	req := analysis.NewRequest(input)
	req.ID = d.newID()
	ticket := Ticket{
		Attempt:   attempt,
		Request:   req,
		Truncated: len(req.LogContent) != len(input),
		StartedAt: started,
	}

	d.logger.Info("analysis dispatched",
		zap.Uint64("attempt", attempt),
		zap.String("request_id", req.ID),
		zap.Int("input_lines", analysis.CountLines(input)),
		zap.Int("sent_lines", analysis.CountLines(req.LogContent)),
		zap.Bool("truncated", ticket.Truncated),
	)
	return ticket, nil
}

// Run sends the ticket's request exactly once, classifies the result and lands the
// session in PhaseCompleted. It blocks until the analyzer returns.
func (d *Dispatcher) Run(ctx context.Context, t Ticket) analysis.Outcome {
	var outcome analysis.Outcome
	if d.analyzer == nil {
		outcome = analysis.Failed(analysis.FailureTransport, "no analysis service configured")
	} else {
		diag, err := d.analyzer.Analyze(ctx, t.Request)
		outcome = analysis.Classify(diag, err)
	}

	finished := d.now()
	fields := []zap.Field{
		zap.Uint64("attempt", t.Attempt),
		zap.String("request_id", t.Request.ID),
		zap.Stringer("outcome", outcome.Kind),
		zap.Duration("duration", finished.Sub(t.StartedAt)),
	}
	switch {
	case outcome.IsSuccess() && outcome.Diagnosis.Explanation == "":
		d.logger.Warn("analysis succeeded without explanation", fields...)
	case outcome.IsSuccess():
		d.logger.Info("analysis completed", append(fields, zap.Bool("suggestion", outcome.Diagnosis.HasSuggestion()))...)
	default:
		d.logger.Warn("analysis failed", append(fields,
			zap.Stringer("failure", outcome.Failure),
			zap.String("message", outcome.Message))...)
	}

	if !d.state.complete(t.Attempt, outcome, finished) {
		d.logger.Warn("stale analysis result dropped", zap.Uint64("attempt", t.Attempt))
	}
	return outcome
}

// Submit is Begin followed by Run for callers that can block, such as the headless
// command.
func (d *Dispatcher) Submit(ctx context.Context) (analysis.Outcome, error) {
	ticket, err := d.Begin()
	if err != nil {
		return analysis.Outcome{}, err
	}
	return d.Run(ctx, ticket), nil
}

// IsRejection reports whether err is one of the silent precondition rejections.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrAlreadyInFlight)
}
