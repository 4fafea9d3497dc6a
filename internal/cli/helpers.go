package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/tilegrab/internal/logger"
	"github.com/glorpus-work/tilegrab/pkg/archive"
	"github.com/glorpus-work/tilegrab/pkg/config"
	"github.com/glorpus-work/tilegrab/pkg/download"
	"github.com/glorpus-work/tilegrab/pkg/downloader"
	"github.com/glorpus-work/tilegrab/pkg/hooks"
	"github.com/glorpus-work/tilegrab/pkg/http"
	"github.com/glorpus-work/tilegrab/pkg/metrics"
	"github.com/glorpus-work/tilegrab/pkg/tilesource"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	HooksDir   *string
)

// jobOptions are the per-command flags shared by commands that run a job.
type jobOptions struct {
	seed     uint64
	seeded   bool
	format   string
	hookVars []string

	metricsFile string
	recorder    *metrics.Recorder
}

// loadConfig loads the settings file and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.OutputFormat(cfg.Settings.LogFormat))

	if HooksDir != nil && *HooksDir != "" {
		cfg.Settings.HooksDir = *HooksDir
	}
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig and SaveConfig report the problem
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}

// loadHookManager returns nil when the hooks directory holds no hooks.
func loadHookManager(cfg *config.Config, vars []string) (*hooks.DefaultHookManager, error) {
	if cfg.Settings.HooksDir == "" {
		return nil, nil
	}
	parsed, err := parseHookVars(vars)
	if err != nil {
		return nil, err
	}
	manager := hooks.NewHookManager(parsed)
	if err := hooks.LoadHooksFromDir(manager, cfg.Settings.HooksDir); err != nil {
		return nil, err
	}
	if manager.Empty() {
		return nil, nil
	}
	logger.Debug("Loaded hooks", logger.Fields{"dir": cfg.Settings.HooksDir})
	return manager, nil
}

// parseHookVars turns KEY=VALUE pairs into script variables.
func parseHookVars(pairs []string) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid hook variable %q, expected KEY=VALUE", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

// openSession loads the job file and builds a session wired to the configured
// HTTP client, hooks and templater.
func openSession(cfg *config.Config, jobPath string, opts *jobOptions, progress io.Writer) (*downloader.Session, error) {
	job, err := config.LoadJob(jobPath)
	if err != nil {
		return nil, err
	}

	format := cfg.Format()
	if opts.format != "" {
		format, err = archive.ParseFormat(opts.format)
		if err != nil {
			return nil, err
		}
	}

	sessionOpts := []downloader.Option{
		downloader.WithFetcher(http.NewHTTPClient(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)),
		downloader.WithArchiveFormat(format),
	}
	if opts.seeded {
		sessionOpts = append(sessionOpts, downloader.WithTemplater(tilesource.NewSeededTemplater(opts.seed)))
	}

	manager, err := loadHookManager(cfg, opts.hookVars)
	if err != nil {
		return nil, err
	}
	if manager != nil {
		sessionOpts = append(sessionOpts, downloader.WithScripts(manager))
	}

	var listeners []func(download.Event)
	if progress != nil && Verbose != nil && *Verbose {
		listeners = append(listeners, func(e download.Event) { printEvent(progress, e) })
	}
	if opts.metricsFile != "" {
		opts.recorder = metrics.NewRecorder()
		listeners = append(listeners, opts.recorder.OnEvent)
	}
	if len(listeners) > 0 {
		sessionOpts = append(sessionOpts, downloader.WithHooks(download.Hooks{OnEvent: func(e download.Event) {
			for _, l := range listeners {
				l(e)
			}
		}}))
	}

	session := downloader.New(job, sessionOpts...)
	if !session.Ready() {
		return nil, fmt.Errorf("%w: %w", downloader.ErrSessionNotReady, session.Err())
	}
	return session, nil
}

// writeMetrics writes the run's metrics when --metrics-file was given.
func writeMetrics(opts *jobOptions) {
	if opts.recorder == nil {
		return
	}
	if err := opts.recorder.WriteTextfile(opts.metricsFile); err != nil {
		logger.Warn("Failed to write metrics", logger.Fields{"path": opts.metricsFile, "error": err.Error()})
		return
	}
	logger.Debug("Wrote metrics", logger.Fields{"path": opts.metricsFile})
}

func printEvent(w io.Writer, e download.Event) {
	switch e.Phase {
	case "done":
		_, _ = fmt.Fprintf(w, "done: %d tiles\n", e.Total)
	case "failed":
		_, _ = fmt.Fprintf(w, "[%d/%d] failed: %s (%v)\n", e.Index+1, e.Total, e.Tile, e.Err)
	default:
		_, _ = fmt.Fprintf(w, "[%d/%d] %s: %s\n", e.Index+1, e.Total, e.Phase, e.Tile)
	}
}

// reportResult prints the run summary and, with strict, turns missing tiles into an error.
func reportResult(w io.Writer, report download.Report, strict bool) error {
	_, _ = fmt.Fprintln(w, report.String())
	for _, f := range report.Failed {
		_, _ = fmt.Fprintf(w, "  failed  %s  %s\n", f.Tile, f.URL)
	}
	for _, id := range report.Skipped {
		_, _ = fmt.Fprintf(w, "  skipped %s\n", id)
	}
	if strict && !report.Complete() {
		return fmt.Errorf("%w: %d of %d tiles missing", ErrIncomplete, len(report.Failed)+len(report.Skipped), report.Total)
	}
	return nil
}
