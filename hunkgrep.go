package hunkgrep

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rs/zerolog"
)

type App struct {
	cfg            *Config
	filter         Filter
	sourceProvider *SourceProvider
	log            zerolog.Logger
	out            io.Writer
	errOut         io.Writer
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func (e *DetailedError) Unwrap() error { return e.Err }

// NewApp validates cfg and compiles its patterns. Selected hunks go to out,
// diagnostics and the summary go to errOut.
func NewApp(cfg *Config, out, errOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}

	log, err := NewLogger(errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:            cfg,
		filter:         filter,
		sourceProvider: NewSourceProvider(),
		log:            log,
		out:            out,
		errOut:         errOut,
	}, nil
}

func (a *App) SetSourceProvider(sp *SourceProvider) { a.sourceProvider = sp }

func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	in, name, err := a.sourceProvider.Open(a.cfg)
	if err != nil {
		return Summary{}, err
	}
	defer in.Close()

	summary, err = a.Run(in)
	summary.Source = name
	if err == nil && a.cfg.Stats {
		fmt.Fprint(a.errOut, FormatSummary(summary))
	}
	return summary, err
}

// Run filters the diff read from r.
func (a *App) Run(r io.Reader) (Summary, error) {
	printer := NewPrinter(a.filter, a.out)
	scan, err := ScanLines(r, printer, func(w Warning) { logWarning(a.log, w) })
	if ferr := printer.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("failed to write output: %w", ferr)
	}

	summary := Summary{Mode: a.filter.Mode, Scan: scan, Filter: printer.Stats()}
	a.log.Debug().
		Int("lines", scan.Lines).
		Int("hunks", scan.Batches).
		Int("selected", summary.Filter.Selected).
		Msg("done")
	return summary, err
}
