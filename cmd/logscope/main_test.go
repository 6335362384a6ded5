package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/five82/logscope/internal/app"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if got := out.String(); !strings.Contains(got, app.Version) {
		t.Fatalf("version output = %q, want %q", got, app.Version)
	}
}

func TestAnalyzeCommand_RejectsUnknownFormat(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"analyze", "-o", "xml", "-"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v, want unknown output format", err)
	}
}

func TestAnalyzeCommand_RejectsExtraArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"analyze", "a.log", "b.log"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for two positional args")
	}
}

func TestRootFlagsDefaults(t *testing.T) {
	root := newRootCmd()
	lines, err := root.Flags().GetInt("lines")
	if err != nil {
		t.Fatalf("GetInt(lines): %v", err)
	}
	if lines != app.DefaultPrefillLines {
		t.Fatalf("--lines default = %d, want %d", lines, app.DefaultPrefillLines)
	}
}
