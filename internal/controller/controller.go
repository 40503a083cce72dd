// Package controller drives one analysis round-trip: validate the input,
// switch the view to busy, call the analysis API, render the payload or a
// failure message, and always switch the view back to idle.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valpere/nyaya/internal"
	"github.com/valpere/nyaya/internal/analyzer"
)

const (
	// MinTextLength is the minimum number of code points in the trimmed input.
	MinTextLength = 15

	IdleLabel = "Run Analysis Pipeline"
	BusyLabel = "Processing..."

	NoticeTooShort          = "Please provide a valid legal document (min 15 characters)."
	MessageConnectionFailed = "Connection failed. Please verify the API server is running."
)

// ErrBusy is returned when a submission arrives while another is in flight.
var ErrBusy = errors.New("analysis already in progress")

// View is the surface the controller mutates. Implementations own the
// trigger, label, loader and output widgets.
type View interface {
	// SetBusy disables the trigger, shows BusyLabel and the loader, and
	// clears any previous output.
	SetBusy()
	// SetIdle re-enables the trigger, restores IdleLabel and hides the loader.
	SetIdle()
	ShowOutput(text string)
	// ShowNotice presents a blocking notice to the user.
	ShowNotice(text string)
}

// Recorder receives every accepted submission once it settles.
type Recorder interface {
	Record(ctx context.Context, rec internal.AnalysisRecord) error
}

type Outcome int

const (
	OutcomeRejected Outcome = iota + 1
	OutcomeRendered
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeRendered:
		return "rendered"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type ValidationError struct {
	Length int
	Min    int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input too short: %d characters, need at least %d", e.Length, e.Min)
}

type Controller struct {
	transport analyzer.Transport
	view      View
	logger    *zap.Logger
	recorder  Recorder
	busy      atomic.Bool
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func New(transport analyzer.Transport, view View, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		view:      view,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Submit runs one analysis for rawText in targetLang. Failures after the
// input is accepted are already shown through the view; the returned error
// carries the cause for the caller.
func (c *Controller) Submit(ctx context.Context, rawText, targetLang string) (Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return OutcomeRejected, ErrBusy
	}
	defer c.busy.Store(false)

	text := strings.TrimSpace(rawText)
	if n := utf8.RuneCountInString(text); n < MinTextLength {
		c.view.ShowNotice(NoticeTooShort)
		return OutcomeRejected, &ValidationError{Length: n, Min: MinTextLength}
	}

	c.view.SetBusy()
	defer c.view.SetIdle()

	rec := internal.AnalysisRecord{
		ID:         uuid.New().String(),
		RawText:    text,
		TargetLang: targetLang,
		Timestamp:  time.Now(),
	}
	c.logger.Info("Processing new document",
		zap.String("id", rec.ID),
		zap.Int("length", utf8.RuneCountInString(text)),
		zap.String("target_lang", targetLang))

	output, outcome, err := c.run(ctx, text, targetLang)

	rec.Latency = time.Since(rec.Timestamp)
	rec.Outcome = outcome.String()
	rec.Output = output
	if err != nil {
		rec.Error = err.Error()
	}
	c.record(ctx, rec)

	return outcome, err
}

func (c *Controller) run(ctx context.Context, text, targetLang string) (string, Outcome, error) {
	env, err := c.transport.Analyze(ctx, analyzer.Request{RawText: text, TargetLang: targetLang})
	if err != nil {
		return c.fail(err)
	}

	if env.Status != analyzer.StatusSuccess {
		// Nothing is rendered for non-success statuses.
		c.logger.Debug("Analysis returned non-success status", zap.String("status", env.Status))
		return "", OutcomeSkipped, nil
	}

	output, err := analyzer.FormatPayload(env)
	if err != nil {
		return c.fail(err)
	}

	c.view.ShowOutput(output)
	return output, OutcomeRendered, nil
}

func (c *Controller) fail(err error) (string, Outcome, error) {
	fields := []zap.Field{zap.Error(err)}
	var te *analyzer.TransportError
	if errors.As(err, &te) {
		fields = append(fields, zap.Int("status_code", te.StatusCode), zap.String("body", te.Body))
	}
	c.logger.Error("Pipeline error", fields...)

	c.view.ShowOutput(MessageConnectionFailed)
	return MessageConnectionFailed, OutcomeFailed, err
}

func (c *Controller) record(ctx context.Context, rec internal.AnalysisRecord) {
	if c.recorder == nil {
		return
	}
	// The request context may already be done; history is still written.
	if err := c.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		c.logger.Warn("Failed to record analysis", zap.String("id", rec.ID), zap.Error(err))
	}
}
