package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/present"
	"github.com/five82/logscope/internal/session"
)

// Format selects the output encoding.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want human, json or yaml)", s)
	}
}

// Result is the machine-readable shape of one finished analysis.
type Result struct {
	Status      string       `json:"status" yaml:"status"`
	Explanation *string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Suggestion  *string      `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Error       *ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`
	InputLines  int          `json:"inputLines" yaml:"inputLines"`
	SentLines   int          `json:"sentLines" yaml:"sentLines"`
	Truncated   bool         `json:"truncated" yaml:"truncated"`
	DurationMS  int64        `json:"durationMs" yaml:"durationMs"`
}

// ErrorDetail describes a failed analysis.
type ErrorDetail struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Succeeded reports whether the result carries a diagnosis.
func (r Result) Succeeded() bool {
	return r.Status == "success"
}

// FromSnapshot builds a Result from a completed session snapshot.
func FromSnapshot(snap session.Snapshot) Result {
	v := present.Derive(snap)
	r := Result{
		InputLines: v.LineCount,
		SentLines:  min(v.LineCount, analysis.MaxLines),
		Truncated:  v.Truncated,
		DurationMS: snap.Elapsed(snap.CompletedAt).Milliseconds(),
	}

	switch {
	case v.Result != nil:
		explanation := v.Result.Explanation
		r.Status = "success"
		r.Explanation = &explanation
		r.Suggestion = v.Result.Suggestion
	case v.Error != nil:
		r.Status = "failure"
		r.Error = &ErrorDetail{Kind: snap.Outcome.Failure.String(), Message: v.Error.Message}
	default:
		r.Status = "pending"
	}
	return r
}

// Write renders r to w in the requested format.
func Write(w io.Writer, format Format, r Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatHuman, "":
		return writeHuman(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, r Result) error {
	output, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func writeYAML(w io.Writer, r Result) error {
	output, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(output)
	return err
}

func writeHuman(w io.Writer, r Result) error {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	if r.Truncated {
		_, _ = fmt.Fprintf(w, "%s\n", color.YellowString("Only the first %d of %d lines were sent.", r.SentLines, r.InputLines))
	}

	switch {
	case r.Error != nil:
		_, _ = red.Fprintln(w, "ANALYSIS FAILED:")
		_, _ = fmt.Fprintf(w, "%s\n", wrapText(r.Error.Message, 80, "   "))
	case r.Explanation != nil:
		_, _ = cyan.Fprintln(w, "DIAGNOSIS:")
		_, _ = fmt.Fprintf(w, "%s\n", wrapText(*r.Explanation, 80, "   "))
		if r.Suggestion != nil {
			_, _ = fmt.Fprintln(w)
			_, _ = green.Fprintln(w, "SUGGESTED FIX:")
			_, _ = fmt.Fprintf(w, "%s\n", wrapText(*r.Suggestion, 80, "   "))
		}
	default:
		_, _ = fmt.Fprintln(w, color.HiBlackString("No analysis has completed."))
		return nil
	}

	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))
	_, err := fmt.Fprintln(w, color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
	return err
}

// wrapText wraps text at width, prefixing every output line with indent.
// Existing line breaks are kept.
func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	limit := width - len(indent)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		words := strings.Fields(line)
		result.WriteString(indent)
		col := 0
		for _, word := range words {
			if col > 0 && col+1+len(word) > limit {
				result.WriteString("\n")
				result.WriteString(indent)
				col = 0
			}
			if col > 0 {
				result.WriteString(" ")
				col++
			}
			result.WriteString(word)
			col += len(word)
		}
	}
	return result.String()
}
