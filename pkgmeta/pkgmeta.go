package pkgmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/LCHCAPITALHUMAIN/ml-toast/cli"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/fs"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/platform/config"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/platform/logging"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/render"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/sink"
	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(step string, current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	conf             *config.Config
	format           render.Format
	pathResolver     *fs.PathResolver
	sink             *sink.Sink
	logger           *slog.Logger
	logCloser        io.Closer
	interactive      bool
	progressCallback ProgressUpdate
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New resolves the project root, loads and validates configuration, and sets
// up logging to stderr.
func New(cfg *cli.Config) (*App, error) {
	return NewWithLogOutput(cfg, os.Stderr)
}

// NewWithLogOutput is New with logs written to w.
func NewWithLogOutput(cfg *cli.Config, w io.Writer) (*App, error) {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	root, err := fs.FindRoot(cfg.Dir)
	if err != nil {
		return nil, err
	}
	pathResolver, err := fs.NewPathResolver(root)
	if err != nil {
		return nil, err
	}

	conf, err := config.Load(config.Options{
		Root:      pathResolver.Root(),
		File:      cfg.ConfigFile,
		Overrides: cfg.Overrides(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logFile := conf.Log.File
	logger, closer := logging.New(logging.Config{
		Level:  conf.Log.Level,
		Format: conf.Log.Format,
		File: logging.FileConfig{
			Enabled:    logFile.Enabled,
			Path:       pathResolver.Resolve(logFile.Path),
			MaxSizeMB:  logFile.MaxSizeMB,
			MaxBackups: logFile.MaxBackups,
			MaxAgeDays: logFile.MaxAgeDays,
			Compress:   logFile.Compress,
		},
	}, w)

	return &App{
		cfg:          cfg,
		conf:         conf,
		format:       format,
		pathResolver: pathResolver,
		sink:         sink.New(cfg.Copy),
		logger:       logger,
		logCloser:    closer,
	}, nil
}

// Logger returns the configured logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Root returns the absolute project root.
func (a *App) Root() string {
	return a.pathResolver.Root()
}

// Close releases the log file, if any.
func (a *App) Close() error {
	return a.logCloser.Close()
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SetInteractive makes Execute render without writing to stdout; the caller
// displays Summary.Output itself.
func (a *App) SetInteractive(interactive bool) {
	a.interactive = interactive
}

// Context returns ctx carrying the app's logger, tagged with the project root.
func (a *App) Context(ctx context.Context) context.Context {
	return logging.WithProject(logging.WithContext(ctx, a.logger), a.Root())
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	ctx = a.Context(ctx)
	if a.cfg.Check {
		return a.check(ctx)
	}
	return a.emit(ctx)
}

// emit collects metadata and writes it in the selected format.
func (a *App) emit(ctx context.Context) (model.Summary, error) {
	m, err := a.Collect(ctx)
	if err != nil {
		return model.Summary{Metadata: m}, err
	}

	output, err := render.Render(m, a.format)
	if err != nil {
		return model.Summary{Metadata: m}, err
	}

	summary := model.Summary{Metadata: m, Output: output}
	if a.interactive {
		return summary, nil
	}

	copied, err := a.sink.Write(output)
	if err != nil {
		return summary, err
	}
	summary.Copied = copied
	if copied {
		summary.Message = "Copied to clipboard."
		logging.FromContext(ctx).Info("metadata copied to clipboard", slog.String("format", string(a.format)))
	}
	return summary, nil
}

// check collects and validates without emitting the metadata itself.
func (a *App) check(ctx context.Context) (model.Summary, error) {
	m, err := a.Collect(ctx)
	if err != nil {
		return model.Summary{Metadata: m}, err
	}

	summary := model.Summary{
		Metadata: m,
		Message:  fmt.Sprintf("%s %s: metadata is valid", m.Name, m.Version),
	}
	if len(m.Warnings) > 0 {
		summary.Message = fmt.Sprintf("%s (%d warning(s))", summary.Message, len(m.Warnings))
		if a.cfg.Strict {
			return summary, fmt.Errorf("%w: %d warning(s) in strict mode", model.ErrInvalidMetadata, len(m.Warnings))
		}
	}

	if !a.interactive {
		if _, err := a.sink.Write(summary.Message + "\n"); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// IsConfigError reports whether err means the project does not declare
// something the metadata needs.
func IsConfigError(err error) bool {
	return errors.Is(err, model.ErrConfig)
}
