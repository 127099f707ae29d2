// Package analysis runs one deck problem end to end and collects a report.
package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/numerr"
	"github.com/edp1096/toy-numeric/pkg/rootfind"
)

type Analysis interface {
	Setup(p *deck.Problem) error
	Execute(ctx context.Context) error
	Report() *Report
}

// ErrorInfo is the serializable form of a solver error.
type ErrorInfo struct {
	Kind    numerr.Kind `json:"kind"`
	Message string      `json:"message"`
}

func errorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	kind := numerr.KindOf(err)
	if kind == "" {
		kind = "internal"
	}
	return &ErrorInfo{Kind: kind, Message: err.Error()}
}

type Report struct {
	RunID    string                `json:"run_id"`
	Title    string                `json:"title,omitempty"`
	Kind     string                `json:"kind"`
	Method   string                `json:"method"`
	Root     *rootfind.SolveResult `json:"root,omitempty"`
	Linear   *LinearReport         `json:"linear,omitempty"`
	Error    *ErrorInfo            `json:"error,omitempty"`
	Duration time.Duration         `json:"duration_ns"`

	Err error `json:"-"`
}

// Settings are the fallbacks for values a deck leaves unset.
type Settings struct {
	Decimals  int
	Tolerance float64
	MaxIter   int
}

func DefaultSettings() Settings {
	return Settings{Decimals: 3, Tolerance: 0.0001, MaxIter: 25}
}

type Option func(*BaseAnalysis)

func WithLogger(logger *slog.Logger) Option {
	return func(a *BaseAnalysis) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithSettings(s Settings) Option {
	return func(a *BaseAnalysis) {
		a.settings = s
	}
}

type BaseAnalysis struct {
	Problem  *deck.Problem
	logger   *slog.Logger
	settings Settings
	report   *Report
}

func NewBaseAnalysis(opts ...Option) *BaseAnalysis {
	ba := &BaseAnalysis{
		logger:   slog.New(slog.DiscardHandler),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(ba)
	}
	return ba
}

func (a *BaseAnalysis) setup(p *deck.Problem, kind deck.Kind) error {
	if p == nil {
		return numerr.New(numerr.ConfigurationError, "analysis", "no problem to set up")
	}
	if err := p.ValidateSettings(); err != nil {
		return err
	}
	a.Problem = p
	a.report = &Report{
		RunID:  uuid.NewString(),
		Title:  p.Title,
		Kind:   kind.String(),
		Method: p.Method,
	}
	return nil
}

func (a *BaseAnalysis) decimals() int {
	if a.Problem.Decimals != nil {
		return *a.Problem.Decimals
	}
	return a.settings.Decimals
}

func (a *BaseAnalysis) tolerance() float64 {
	if a.Problem.Tolerance != nil {
		return *a.Problem.Tolerance
	}
	return a.settings.Tolerance
}

func (a *BaseAnalysis) maxIter() int {
	if a.Problem.MaxIter != nil {
		return *a.Problem.MaxIter
	}
	return a.settings.MaxIter
}

func (a *BaseAnalysis) begin(ctx context.Context) (time.Time, error) {
	if a.report == nil {
		return time.Time{}, errors.New("analysis executed before setup")
	}
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	a.logger.InfoContext(ctx, "analysis started",
		slog.String("run_id", a.report.RunID),
		slog.String("method", a.report.Method),
	)
	return time.Now(), nil
}

func (a *BaseAnalysis) finish(ctx context.Context, start time.Time, err error, attrs ...any) error {
	a.report.Duration = time.Since(start)
	a.report.Err = err
	a.report.Error = errorInfo(err)

	args := append([]any{
		slog.String("run_id", a.report.RunID),
		slog.String("method", a.report.Method),
		slog.Duration("duration", a.report.Duration),
	}, attrs...)
	if err != nil {
		args = append(args, slog.String("error_kind", string(numerr.KindOf(err))), slog.String("error", err.Error()))
		a.logger.WarnContext(ctx, "analysis finished with error", args...)
		return err
	}
	a.logger.InfoContext(ctx, "analysis finished", args...)
	return nil
}

func (a *BaseAnalysis) Report() *Report {
	return a.report
}

// New returns the analysis that handles method.
func New(method string, opts ...Option) (Analysis, error) {
	p := &deck.Problem{Method: strings.ToLower(strings.TrimSpace(method))}
	if p.Kind() == deck.KindLinear {
		return NewLinear(opts...), nil
	}
	if _, err := rootfind.ParseMethod(p.Method); err != nil {
		return nil, err
	}
	return NewRoot(opts...), nil
}

// Run sets up and executes the analysis for p. The report is returned even
// when the solve fails, as long as setup succeeded.
func Run(ctx context.Context, p *deck.Problem, opts ...Option) (*Report, error) {
	if p == nil {
		return nil, numerr.New(numerr.ConfigurationError, "analysis", "no problem to run")
	}
	a, err := New(p.Method, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.Setup(p); err != nil {
		return nil, err
	}
	err = a.Execute(ctx)
	return a.Report(), err
}
