package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/present"
	"github.com/five82/logscope/internal/session"
)

// Phase badge labels.
const (
	badgeReady     = "ready"
	badgeAnalyzing = "analyzing"
	badgeDone      = "done"
	badgeFailed    = "failed"
)

const resultPlaceholder = "Paste a log into the editor and press ctrl+s to analyze it."

// view derives the presentation state for the current session snapshot.
func (m Model) view() present.View {
	return present.Derive(m.state.Snapshot())
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	snap := m.state.Snapshot()
	v := present.Derive(snap)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(snap),
		m.renderPane(m.editor.View(), m.focus == PaneEditor),
		m.renderStatus(snap, v),
		m.renderPane(m.renderResultBody(v), m.focus == PaneResult),
		m.renderFooter(),
	)
}

// renderHeader renders the title bar: name, endpoint and phase badge.
func (m Model) renderHeader(snap session.Snapshot) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	label := phaseBadge(snap)
	parts := []string{
		bg.Render("logscope", styles.Logo),
		styles.PhaseStyle(label).Render(strings.ToUpper(label)),
	}
	if m.endpoint != "" {
		parts = append(parts,
			bg.Render("service", styles.FaintText)+bg.Spaces(1)+
				bg.Render(truncateMiddle(m.endpoint, endpointDisplayWidth), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderStatus renders the line between the panes: buffer size, truncation and
// whether a submission is possible right now.
func (m Model) renderStatus(snap session.Snapshot, v present.View) string {
	styles := m.theme.Styles()

	parts := []string{styles.MutedText.Render(pluralize(v.LineCount, "line", "lines"))}
	if v.Truncated {
		parts = append(parts, styles.WarningText.Render(
			fmt.Sprintf("only the first %d lines are sent", analysis.MaxLines)))
	}

	switch {
	case v.Loading:
		parts = append(parts, styles.InfoText.Render(
			"analyzing "+humanizeDuration(snap.Elapsed(m.now()))))
	case v.SubmitEnabled:
		parts = append(parts, styles.AccentText.Render(m.keys.Submit.Help().Key+" to analyze"))
	default:
		parts = append(parts, styles.FaintText.Render("nothing to analyze"))
	}

	if snap.Phase == session.PhaseCompleted {
		parts = append(parts, styles.FaintText.Render(
			"last run "+humanizeDuration(snap.Elapsed(m.now()))))
	}

	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(strings.Join(parts, "  "))
}

// renderResultBody shows the spinner while a request is in flight and the
// scrollable result otherwise.
func (m Model) renderResultBody(v present.View) string {
	if !v.Loading {
		return m.result.View()
	}
	styles := m.theme.Styles()
	line := m.spinner.View() + " " + styles.Text.Render("Analyzing log...")
	return lipgloss.NewStyle().
		Width(m.result.Width).
		Height(m.result.Height).
		Render(line)
}

// renderPane wraps content in a border that highlights the focused pane.
func (m Model) renderPane(content string, focused bool) string {
	styles := m.theme.Styles()
	style := styles.Pane
	if focused {
		style = styles.FocusedPane
	}
	return style.Render(content)
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Spaces(1)+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderResult builds the result pane content: the diagnosis and optional
// suggested fix, the failure message, or a hint when nothing has run yet.
func renderResult(v present.View, styles Styles, width int) string {
	width = max(width, 1)

	var b strings.Builder
	switch {
	case v.Result != nil:
		b.WriteString(styles.AccentText.Bold(true).Render("Diagnosis"))
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(v.Result.Explanation))
		if v.Result.ShowSuggestion() {
			b.WriteString("\n\n")
			b.WriteString(styles.SuccessText.Render("Suggested fix"))
			b.WriteString("\n")
			b.WriteString(styles.Text.Width(width).Render(*v.Result.Suggestion))
		}
	case v.Error != nil:
		b.WriteString(styles.DangerText.Render("Analysis failed"))
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(v.Error.Message))
	default:
		b.WriteString(styles.FaintText.Width(width).Render(resultPlaceholder))
	}
	return b.String()
}

// phaseBadge maps a snapshot to its header badge label.
func phaseBadge(snap session.Snapshot) string {
	switch snap.Phase {
	case session.PhaseSubmitting:
		return badgeAnalyzing
	case session.PhaseCompleted:
		if snap.Outcome.IsSuccess() {
			return badgeDone
		}
		return badgeFailed
	default:
		return badgeReady
	}
}
