package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/logscope/internal/app"
	"github.com/five82/logscope/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, app.ErrAnalysisFailed) {
			fmt.Fprintf(os.Stderr, "logscope: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:   "logscope",
		Short: "Explain log output with an analysis service",
		Long: `logscope sends up to 50 lines of log text to an analysis service and shows
the diagnosis and suggested fix it returns.

Without a subcommand it opens the terminal UI. Use "logscope analyze" for a
single headless submission from a file or stdin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/logscope/config.toml)")
	rootCmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (default ~/.config/logscope/prefs.toml)")
	rootCmd.Flags().StringVarP(&opts.File, "file", "f", "", "prefill the editor with the end of a log file")
	rootCmd.Flags().IntVar(&opts.Lines, "lines", app.DefaultPrefillLines, "number of trailing lines loaded by --file")

	rootCmd.AddCommand(
		newAnalyzeCmd(&opts.ConfigPath),
		newVersionCmd(),
	)
	return rootCmd
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var (
		outputFormat string
		tail         int
	)

	cmd := &cobra.Command{
		Use:   "analyze [FILE|-]",
		Short: "Analyze a log file or stdin without the UI",
		Long: `Submit a log once and print the result. Reads stdin when FILE is "-" or
omitted. Only the first 50 lines are sent.

Examples:
  # Analyze a file
  logscope analyze /var/log/app/error.log

  # Pipe the tail of a journal
  journalctl -u app -n 200 | logscope analyze -

  # Machine-readable output
  logscope analyze crash.log -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return app.Analyze(cmd.Context(), app.AnalyzeOptions{
				ConfigPath: *configPath,
				Source:     source,
				Tail:       tail,
				Format:     format,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     os.Stderr,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&tail, "tail", 0, "use only the last N lines of the input (0 keeps everything)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "logscope version %s\n", app.Version)
		},
	}
}
