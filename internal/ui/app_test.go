package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/prefs"
	"github.com/five82/logscope/internal/session"
)

type stubAnalyzer struct {
	mu    sync.Mutex
	calls []analysis.Request
	diag  analysis.Diagnosis
	err   error
}

func (s *stubAnalyzer) Analyze(_ context.Context, req analysis.Request) (analysis.Diagnosis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	return s.diag, s.err
}

func (s *stubAnalyzer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestModel(t *testing.T, a analysis.Analyzer, input string) Model {
	t.Helper()
	m := New(Options{
		Dispatcher:   session.NewDispatcher(nil, a, nil),
		Endpoint:     "http://localhost:8080/log/analyze",
		InitialInput: input,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

// finish runs the submit command and feeds the outcome back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		if om, ok := msg.(outcomeMsg); ok {
			next, _ := m.Update(om)
			return next.(Model)
		}
	}
	t.Fatalf("submit command produced no outcomeMsg")
	return m
}

func TestModel_TypingUpdatesSessionInput(t *testing.T) {
	m := newTestModel(t, &stubAnalyzer{}, "")
	m = typeText(t, m, "panic: boom")

	if got := m.state.Input(); got != "panic: boom" {
		t.Fatalf("session input = %q, want %q", got, "panic: boom")
	}
	if !m.view().SubmitEnabled {
		t.Fatalf("SubmitEnabled = false, want true")
	}
}

func TestModel_SubmitSuccessRendersDiagnosisAndSuggestion(t *testing.T) {
	fix := "Add a null check"
	stub := &stubAnalyzer{diag: analysis.Diagnosis{Explanation: "Null dereference", Suggestion: &fix}}
	m := newTestModel(t, stub, "NullPointerException at line 42")

	m, cmd := press(t, m, tea.KeyCtrlS)
	if cmd == nil {
		t.Fatalf("submit returned nil cmd")
	}
	if got := m.state.Phase(); got != session.PhaseSubmitting {
		t.Fatalf("phase = %v, want submitting", got)
	}
	if !strings.Contains(m.View(), "Analyzing log") {
		t.Fatalf("view while submitting does not show progress")
	}

	m = finish(t, m, cmd)
	if got := m.state.Phase(); got != session.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", got)
	}
	out := m.View()
	for _, want := range []string{"Diagnosis", "Null dereference", "Suggested fix", "Add a null check", "DONE"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if stub.callCount() != 1 {
		t.Fatalf("analyzer calls = %d, want 1", stub.callCount())
	}
}

func TestModel_SuccessWithoutSuggestionHidesBlock(t *testing.T) {
	stub := &stubAnalyzer{diag: analysis.Diagnosis{Explanation: "disk full"}}
	m := newTestModel(t, stub, "ENOSPC")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = finish(t, m, cmd)

	out := m.View()
	if !strings.Contains(out, "disk full") {
		t.Fatalf("view missing explanation")
	}
	if strings.Contains(out, "Suggested fix") {
		t.Fatalf("view shows suggestion block without a suggestion")
	}
}

func TestModel_ServiceFailureRendersMessage(t *testing.T) {
	stub := &stubAnalyzer{err: &analysis.ServiceError{Status: 500, Message: "model unavailable"}}
	m := newTestModel(t, stub, "some error")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = finish(t, m, cmd)

	out := m.View()
	if !strings.Contains(out, "Analysis failed") || !strings.Contains(out, "model unavailable") {
		t.Fatalf("view missing failure message")
	}
	if strings.Contains(out, "Diagnosis") {
		t.Fatalf("view shows diagnosis block on failure")
	}
	if !m.view().SubmitEnabled {
		t.Fatalf("SubmitEnabled = false after failure, want true")
	}
}

func TestModel_BlankInputSubmitIsNoOp(t *testing.T) {
	stub := &stubAnalyzer{}
	m := newTestModel(t, stub, "   ")

	m, cmd := press(t, m, tea.KeyCtrlS)
	if cmd != nil {
		t.Fatalf("submit on blank input returned a cmd")
	}
	if got := m.state.Phase(); got != session.PhaseIdle {
		t.Fatalf("phase = %v, want idle", got)
	}
	if stub.callCount() != 0 {
		t.Fatalf("analyzer calls = %d, want 0", stub.callCount())
	}
}

func TestModel_SecondSubmitWhileInFlightIsNoOp(t *testing.T) {
	stub := &stubAnalyzer{diag: analysis.Diagnosis{Explanation: "ok"}}
	m := newTestModel(t, stub, "some error")

	m, first := press(t, m, tea.KeyCtrlS)
	m, second := press(t, m, tea.KeyCtrlS)
	if second != nil {
		t.Fatalf("second submit returned a cmd")
	}

	m = finish(t, m, first)
	if stub.callCount() != 1 {
		t.Fatalf("analyzer calls = %d, want 1", stub.callCount())
	}
	if got := m.state.Phase(); got != session.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", got)
	}
}

func TestModel_EditingWhileSubmittingKeepsRequest(t *testing.T) {
	stub := &stubAnalyzer{diag: analysis.Diagnosis{Explanation: "ok"}}
	m := newTestModel(t, stub, "first")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = typeText(t, m, " more")
	m = finish(t, m, cmd)

	if got := stub.calls[0].LogContent; got != "first" {
		t.Fatalf("sent = %q, want %q", got, "first")
	}
	if got := m.state.Input(); got != "first more" {
		t.Fatalf("input = %q, want %q", got, "first more")
	}
}

func TestModel_ClearEmptiesBuffer(t *testing.T) {
	m := newTestModel(t, &stubAnalyzer{}, "some error")

	m, _ = press(t, m, tea.KeyCtrlR)
	if got := m.state.Input(); got != "" {
		t.Fatalf("input = %q, want empty", got)
	}
	if m.view().SubmitEnabled {
		t.Fatalf("SubmitEnabled = true after clear, want false")
	}
}

func TestModel_TruncationHintShown(t *testing.T) {
	lines := make([]string, analysis.MaxLines+10)
	for i := range lines {
		lines[i] = "x"
	}
	m := newTestModel(t, &stubAnalyzer{}, strings.Join(lines, "\n"))

	if !strings.Contains(m.View(), "only the first 50 lines are sent") {
		t.Fatalf("view missing truncation hint")
	}
}

func TestModel_TabMovesFocusAndBlocksTyping(t *testing.T) {
	m := newTestModel(t, &stubAnalyzer{}, "abc")

	m, _ = press(t, m, tea.KeyTab)
	if m.focus != PaneResult {
		t.Fatalf("focus = %v, want result", m.focus)
	}
	m = typeText(t, m, "zzz")
	if got := m.state.Input(); got != "abc" {
		t.Fatalf("input = %q, want unchanged %q", got, "abc")
	}

	m, _ = press(t, m, tea.KeyEsc)
	if m.focus != PaneEditor {
		t.Fatalf("focus = %v, want editor", m.focus)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, &stubAnalyzer{}, "")

	m, _ = press(t, m, tea.KeyF1)
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m, _ = press(t, m, tea.KeyCtrlS)
	if m.showHelp {
		t.Fatalf("help overlay still shown")
	}
	if got := m.state.Phase(); got != session.PhaseIdle {
		t.Fatalf("key that closed help also acted: phase = %v", got)
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Prefs: prefs.Open(path)})

	m, _ = press(t, m, tea.KeyCtrlT)
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	if got := prefs.Open(path).Load().Theme; got != "Slate" {
		t.Fatalf("persisted theme = %q, want Slate", got)
	}
}

func TestModel_NilDispatcherFailsSubmission(t *testing.T) {
	m := New(Options{InitialInput: "boom"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = finish(t, m, cmd)

	outcome, ok := m.state.Outcome()
	if !ok || outcome.IsSuccess() {
		t.Fatalf("outcome = %+v, ok = %v, want failure", outcome, ok)
	}
}

func TestModel_QuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel(t, &stubAnalyzer{}, "")
	_, cmd := press(t, m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatalf("quit returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit cmd did not produce tea.QuitMsg")
	}
}

func TestRunAnalysisCmd_CancelledContext(t *testing.T) {
	stub := &stubAnalyzer{err: &analysis.TransportError{Err: context.Canceled}}
	d := session.NewDispatcher(nil, stub, nil)
	d.State().SetInput("x")
	ticket, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg := runAnalysisCmd(ctx, d, ticket)().(outcomeMsg)
	if msg.attempt != ticket.Attempt {
		t.Fatalf("attempt = %d, want %d", msg.attempt, ticket.Attempt)
	}
	if msg.outcome.Failure != analysis.FailureTransport {
		t.Fatalf("failure = %v, want transport", msg.outcome.Failure)
	}
}
