package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/five82/logscope/internal/logtail"
	"github.com/five82/logscope/internal/report"
	"github.com/five82/logscope/internal/session"
)

// ErrAnalysisFailed is returned by Analyze after a failure outcome has been
// reported. Callers map it to a non-zero exit code without printing it again.
var ErrAnalysisFailed = errors.New("analysis failed")

// AnalyzeOptions configure one headless submission.
type AnalyzeOptions struct {
	ConfigPath string
	Source     string // file path, or "-" for stdin
	Tail       int    // keep only the last Tail lines of Source; zero keeps all
	Format     report.Format

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Analyze reads Source, submits it once through a Dispatcher and writes the
// outcome to Stdout.
func Analyze(ctx context.Context, opts AnalyzeOptions) error {
	opts = withStreams(opts)

	env, err := bootstrap(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer env.close()

	source := opts.Source
	if source == "" {
		source = logtail.Stdin
	}
	input, err := logtail.ReadSource(source, opts.Stdin, opts.Tail)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	state := &session.State{}
	state.SetInput(input)
	dispatcher := session.NewDispatcher(state, env.client, env.logger.Named("headless"))

	progress := report.StartProgress(opts.Stderr, "Analyzing log...")
	_, err = dispatcher.Submit(ctx)
	progress.Stop()
	if errors.Is(err, session.ErrEmptyInput) {
		return errors.New("nothing to analyze: input is empty")
	}
	if err != nil {
		return err
	}

	result := report.FromSnapshot(state.Snapshot())
	if err := report.Write(opts.Stdout, opts.Format, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !result.Succeeded() {
		env.logger.Debug("headless analysis reported failure", zap.String("status", result.Status))
		return ErrAnalysisFailed
	}
	return nil
}

func withStreams(opts AnalyzeOptions) AnalyzeOptions {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return opts
}
