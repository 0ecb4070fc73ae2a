// Package cmd implements the unbound command tree.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/config"
	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/log"
	"github.com/ShubhamSPawade/unbound/internal/metrics"
	"github.com/ShubhamSPawade/unbound/internal/session"
	"github.com/ShubhamSPawade/unbound/internal/storage"
	"github.com/ShubhamSPawade/unbound/internal/ux"
	"github.com/ShubhamSPawade/unbound/internal/version"
)

// setupAnnotation marks how much of the App a command needs.
const setupAnnotation = "unbound/setup"

const (
	// setupNone skips configuration entirely.
	setupNone = "none"
	// setupConfig loads configuration but does not open storage or the backend client.
	setupConfig = "config"
)

// options are the persistent flags.
type options struct {
	configFile  string
	apiURL      string
	output      string
	query       string
	logLevel    string
	logFormat   string
	storage     string
	timeout     time.Duration
	noColor     bool
	metricsFile string
}

// App carries what a command needs once the persistent flags are parsed.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Store   storage.Store
	Client  *gateway.Client
	Session *session.Manager
	Metrics *metrics.Metrics

	opts      options
	out       io.Writer
	errOut    io.Writer
	formatter ux.Formatter
	registry  *prometheus.Registry
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd(os.Stdout, os.Stderr)
	return root
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *App) {
	app := &App{out: out, errOut: errOut}
	app.registry, app.Metrics = metrics.NewRegistry()

	root := &cobra.Command{
		Use:   "unbound",
		Short: "Discover college fests and manage events from the terminal",
		Long: `unbound is a client for the Unbound college event platform.

Students browse fests, register for events and download certificates.
Colleges publish fests and events and track registrations. Admins
approve what gets published.

Configuration is read from ~/.unbound/config.yaml, a .env file and
UNBOUND_* environment variables, in that order; flags win over all of them.`,
		Version:       version.GetInfo().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&app.opts.configFile, "config", "", "config file (default is $HOME/.unbound/config.yaml)")
	flags.StringVar(&app.opts.apiURL, "api-url", "", "backend base URL, including /api")
	flags.StringVarP(&app.opts.output, "output", "o", "text", "output format: "+strings.Join(ux.Formats, ", "))
	flags.StringVar(&app.opts.query, "query", "", "JMESPath expression applied to the result")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&app.opts.logFormat, "log-format", "", "log format: text, json")
	flags.StringVar(&app.opts.storage, "storage", "", "session storage backend: file, memory, redis")
	flags.DurationVar(&app.opts.timeout, "timeout", 0, "per-request timeout (default 10s)")
	flags.BoolVar(&app.opts.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&app.opts.metricsFile, "metrics-file", "", "write Prometheus metrics for this run to a file")

	root.AddCommand(
		newAuthCmd(app),
		newHealthCmd(app),
		newDoctorCmd(app),
		newExploreCmd(app),
		newFestsCmd(app),
		newEventsCmd(app),
		newStudentCmd(app),
		newTeamsCmd(app),
		newReviewsCmd(app),
		newCollegeCmd(app),
		newPaymentsCmd(app),
		newAdminCmd(app),
		newConfigCmd(app),
		newVersionCmd(app),
	)

	return root, app
}

// ExecuteContext runs the command tree. Errors are rendered to stderr
// before being returned so main only has to pick the exit code.
func ExecuteContext(ctx context.Context) error {
	root, app := newRootCmd(os.Stdout, os.Stderr)
	return app.execute(ctx, root)
}

func (a *App) execute(ctx context.Context, root *cobra.Command) error {
	start := time.Now()
	cmd, err := root.ExecuteContextC(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if cmd != nil {
		a.Metrics.ObserveCommand(cmd.CommandPath(), err, time.Since(start))
	}
	if path := a.metricsPath(); path != "" {
		if werr := metrics.WriteTextfile(path, a.registry); werr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeConfigInvalid, "cannot write metrics file", werr)
		}
	}
	if err != nil && !stderrors.Is(err, context.Canceled) {
		ux.RenderError(a.errOut, a.styles(), err)
	}
	return err
}

func setupLevel(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if level, ok := c.Annotations[setupAnnotation]; ok {
			return level
		}
	}
	return ""
}

// setup loads configuration, applies flag overrides and wires storage, the
// backend client and the session manager.
func (a *App) setup(cmd *cobra.Command) error {
	formatter, err := ux.NewFormatter(a.opts.output, &ux.FormatterOptions{
		Writer:  a.out,
		NoColor: a.opts.noColor,
		Query:   a.opts.query,
	})
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	a.formatter = formatter

	level := setupLevel(cmd)
	if level == setupNone {
		return nil
	}

	cfg, err := config.Load(config.LoadOptions{File: a.opts.configFile})
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.Log.Level)
	logCfg.Format = log.ParseFormat(cfg.Log.Format)
	logCfg.Output = a.errOut
	logCfg.ServiceVersion = version.GetInfo().Short()
	a.Logger = log.New(logCfg).Component("cli")
	log.SetDefaultLogger(a.Logger)

	if level == setupConfig {
		return nil
	}

	store, err := storage.Open(cfg.Storage, a.Logger)
	if err != nil {
		return err
	}
	a.Store = store

	ctx := cmd.Context()
	a.Client = gateway.NewClient(ctx, gateway.Config{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.RequestTimeout,
		Store:    store,
		Logger:   a.Logger,
		Observer: a.Metrics,
	})
	a.Session = session.NewManager(ctx, a.Client, store, a.Logger)

	a.Logger.Debug("command ready", "command", cmd.CommandPath(), "api_url", cfg.APIURL, "storage", cfg.Storage.Backend)
	return nil
}

// applyFlags overrides configuration with flags the user actually set.
func (a *App) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.opts.apiURL
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = a.opts.timeout
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = a.opts.storage
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.opts.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.opts.metricsFile
	}
}

// metricsPath is where the run's metrics go, or "" for nowhere.
func (a *App) metricsPath() string {
	if a.opts.metricsFile != "" {
		return a.opts.metricsFile
	}
	if a.Config != nil {
		return a.Config.MetricsFile
	}
	return ""
}

func (a *App) close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

// print writes a command result in the selected output format.
func (a *App) print(data any) error {
	return a.formatter.Format(data)
}

// styles returns the text styles for the current --no-color setting.
func (a *App) styles() ux.Styles {
	return ux.NewStyles(a.opts.noColor)
}

// textOutput reports whether results are written for people.
func (a *App) textOutput() bool {
	f := strings.ToLower(a.opts.output)
	return (f == "text" || f == "") && strings.TrimSpace(a.opts.query) == ""
}

// notice writes a status line for people. Machine-readable formats stay clean.
func (a *App) notice(format string, args ...any) {
	if !a.textOutput() {
		return
	}
	fmt.Fprintf(a.out, format+"\n", args...)
}
