package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/logscope/internal/analysis"
	"github.com/five82/logscope/internal/config"
	"github.com/five82/logscope/internal/logging"
	"github.com/five82/logscope/internal/logtail"
	"github.com/five82/logscope/internal/prefs"
	"github.com/five82/logscope/internal/session"
	"github.com/five82/logscope/internal/ui"
)

// Version is stamped at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

// DefaultPrefillLines is how many trailing lines --file loads into the editor.
const DefaultPrefillLines = analysis.MaxLines

// Options configure the interactive logscope session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/logscope/prefs.toml
	File       string // optional log file to prefill the editor with
	Lines      int    // trailing lines of File to load; zero uses DefaultPrefillLines
}

// Run boots the logscope TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := bootstrap(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer env.close()

	initial := ""
	if opts.File == logtail.Stdin {
		return fmt.Errorf("--file cannot read stdin while the terminal UI owns it; use logscope analyze -")
	}
	if opts.File != "" {
		lines := opts.Lines
		if lines == 0 {
			lines = DefaultPrefillLines
		}
		initial, err = logtail.ReadSource(opts.File, nil, lines)
		if err != nil {
			return fmt.Errorf("prefill from %s: %w", opts.File, err)
		}
	}

	prefsFile := prefs.Open(opts.PrefsPath)
	userPrefs := prefsFile.Load()

	dispatcher := session.NewDispatcher(&session.State{}, env.client, env.logger)

	uiOpts := ui.Options{
		Context:      ctx,
		Dispatcher:   dispatcher,
		Endpoint:     env.client.Endpoint(),
		ThemeName:    userPrefs.Theme,
		Prefs:        prefsFile,
		InitialInput: initial,
		Logger:       env.logger,
	}
	env.logger.Info("ui starting", zap.String("theme", userPrefs.Theme), zap.Bool("prefilled", initial != ""))
	return ui.Run(uiOpts)
}

// environment is what both modes share: config, the file logger and the client.
type environment struct {
	cfg    config.Config
	logger *zap.Logger
	client *analysis.Client
}

func bootstrap(configPath string) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := analysis.NewClient(cfg.ServiceURL, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init analysis client: %w", err)
	}
	client.SetUserAgent("logscope/" + Version)

	logger.Info("logscope starting",
		zap.String("version", Version),
		zap.String("service_url", client.Endpoint()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)
	return &environment{cfg: cfg, logger: logger, client: client}, nil
}

func (e *environment) close() {
	_ = e.logger.Sync()
}
