package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/prefs"
	"github.com/five82/logscope/internal/session"
)

// Pane identifies which pane receives keyboard input.
type Pane int

const (
	PaneEditor Pane = iota
	PaneResult
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Dispatcher *session.Dispatcher
	Endpoint   string
	ThemeName  string
	// Prefs receives theme changes. A zero File disables persistence.
	Prefs        prefs.File
	InitialInput string
	Logger       *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	dispatcher *session.Dispatcher
	state      *session.State
	prefs      prefs.File
	logger     *zap.Logger
	endpoint   string
	keys       keyMap
	now        func() time.Time

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    Pane
	showHelp bool

	// Components
	editor  textarea.Model
	result  viewport.Model
	spinner spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = session.NewDispatcher(nil, nil, logger)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	editor := textarea.New()
	editor.Placeholder = "Paste log lines here..."
	editor.ShowLineNumbers = true
	editor.Prompt = ""
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	m := Model{
		ctx:        ctx,
		dispatcher: dispatcher,
		state:      dispatcher.State(),
		prefs:      opts.Prefs,
		logger:     logger.Named("ui"),
		endpoint:   opts.Endpoint,
		keys:       DefaultKeyMap(),
		now:        time.Now,
		theme:      GetTheme(themeName),
		focus:      PaneEditor,
		editor:     editor,
		result:     viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	if opts.InitialInput != "" {
		m.editor.SetValue(opts.InitialInput)
	}
	m.syncInput()
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textarea.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refreshResult()
		return m, nil

	case outcomeMsg:
		m.refreshResult()
		m.result.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase() != session.PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.editor.Reset()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.toggleFocus()
	}

	if m.focus == PaneResult {
		return m.handleResultKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.syncInput()
	return m, cmd
}

// handleResultKey scrolls the result pane.
func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Top):
		m.result.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.result.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

// submit starts an analysis when the session accepts one. Rejected submissions
// (blank buffer, request already in flight) are silent no-ops.
func (m Model) submit() (tea.Model, tea.Cmd) {
	ticket, err := m.dispatcher.Begin()
	if err != nil {
		return m, nil
	}
	m.refreshResult()
	return m, tea.Batch(
		m.spinner.Tick,
		runAnalysisCmd(m.ctx, m.dispatcher, ticket),
	)
}

// syncInput mirrors the editor into the session's input buffer.
func (m *Model) syncInput() {
	m.state.SetInput(m.editor.Value())
}

// toggleFocus moves keyboard input between the editor and the result pane.
func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == PaneEditor {
		m.focus = PaneResult
		m.editor.Blur()
		return nil
	}
	m.focus = PaneEditor
	return m.editor.Focus()
}

// cycleTheme switches to the next theme and remembers the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	m.refreshResult()

	if m.prefs.Path() == "" {
		return
	}
	if err := m.prefs.SaveTheme(m.theme.Name); err != nil {
		m.logger.Warn("save theme preference", zap.String("theme", m.theme.Name), zap.Error(err))
	}
}

// applyTheme pushes theme colors into the bubbles components.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()

	m.editor.FocusedStyle.Text = styles.Text
	m.editor.FocusedStyle.Placeholder = styles.FaintText
	m.editor.FocusedStyle.LineNumber = styles.FaintText
	m.editor.FocusedStyle.CursorLineNumber = styles.AccentText
	m.editor.FocusedStyle.CursorLine = styles.Text
	m.editor.BlurredStyle.Text = styles.MutedText
	m.editor.BlurredStyle.Placeholder = styles.FaintText
	m.editor.BlurredStyle.LineNumber = styles.FaintText
	m.editor.BlurredStyle.CursorLineNumber = styles.FaintText

	m.spinner.Style = styles.InfoText
}

// resize lays the editor and result panes out for the current window.
func (m *Model) resize() {
	innerWidth := max(m.width-paneBorder, 1)
	body := m.height - chromeRows - 2*paneBorder
	editorRows := max(body*editorShare/100, minPaneHeight)
	resultRows := max(body-editorRows, minPaneHeight)

	m.editor.SetWidth(innerWidth)
	m.editor.SetHeight(editorRows)
	m.result.Width = innerWidth
	m.result.Height = resultRows
}

// refreshResult re-derives the result pane content from the session.
func (m *Model) refreshResult() {
	v := m.view()
	m.result.SetContent(renderResult(v, m.theme.Styles(), m.result.Width))
}

// Messages

// outcomeMsg reports that the analysis for attempt has finished. The session
// already holds the outcome; the message only triggers a re-render.
type outcomeMsg struct {
	attempt uint64
	outcome analysis.Outcome
}

// Commands

func runAnalysisCmd(ctx context.Context, d *session.Dispatcher, t session.Ticket) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{
			attempt: t.Attempt,
			outcome: d.Run(ctx, t),
		}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
