package icon

import (
	"context"
	"os"
	"path/filepath"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"storeicons/internal/domain/eventbus"
	platformerrors "storeicons/internal/platform/errors"
	"storeicons/internal/platform/logging"
)

// Status is the terminal outcome of one generation run.
type Status string

const (
	// StatusFullSuccess: every table entry rendered and persisted.
	StatusFullSuccess Status = "full_success"
	// StatusPartialSuccess: the batch completed but one or more entries
	// failed; the failures are recorded per entry.
	StatusPartialSuccess Status = "partial_success"
	// StatusValidationFailed: the aspect-ratio gate rejected the source; no
	// entry was processed.
	StatusValidationFailed Status = "validation_failed"
	// StatusAborted: run-level failure (bad source, output directory setup,
	// cancellation). Outcomes hold whatever completed before the abort.
	StatusAborted Status = "aborted"
)

// Outcome records one table entry's result. Exactly one of Path or Reason is
// set.
type Outcome struct {
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Failed reports whether the entry failed.
func (o Outcome) Failed() bool { return o.Reason != "" }

// ProgressFunc receives (completedCount, totalCount) after each rendered
// entry, strictly in table order.
type ProgressFunc func(completed, total int)

// Request describes one generation run. Read-only once handed to Generate.
type Request struct {
	Source    *SourceImage
	Family    Family
	OutputDir string
	Progress  ProgressFunc
}

// Result is the aggregate outcome of a run.
type Result struct {
	RunID    string    `json:"run_id"`
	Family   Family    `json:"family"`
	Status   Status    `json:"status"`
	Total    int       `json:"total"`
	Outcomes []Outcome `json:"outcomes"`
	Observed float64   `json:"observed_ratio,omitempty"`
	Expected float64   `json:"expected_ratio,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// Failed returns the entries that did not produce an output file.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Runner drives Validator -> SizeTable -> Renderer for a whole family and
// aggregates per-entry results. Entries run sequentially in table order;
// concurrent Generate calls on one Runner are admitted one at a time.
type Runner struct {
	renderer Renderer
	logger   *logging.Logger
	bus      evbus.Bus
	sem      *semaphore.Weighted
}

type RunnerOption func(*Runner)

// WithBus routes progress and completion events to a private bus instead of
// the shared one.
func WithBus(bus evbus.Bus) RunnerOption {
	return func(r *Runner) { r.bus = bus }
}

func NewRunner(renderer Renderer, logger *logging.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		renderer: renderer,
		logger:   logger,
		bus:      eventbus.Get(),
		sem:      semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ensureOutputDir makes sure the directory exists and is writable before any
// entry is processed.
func ensureOutputDir(dir string) error {
	if dir == "" {
		return platformerrors.New(platformerrors.KindIOSetup, "prepare output",
			"output directory not specified")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return platformerrors.Wrap(platformerrors.KindIOSetup, "prepare output",
			"create output directory", err)
	}
	probe, err := os.CreateTemp(dir, ".storeicons-probe-*")
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindIOSetup, "prepare output",
			"output directory not writable", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// Generate runs the full pipeline for one request.
//
// The returned Result always reflects the terminal state. The error is nil
// when the batch ran to completion, even if individual entries failed; it is
// non-nil for run-level failures (validation, setup, cancellation) and for
// programming errors, where the Result may be nil.
func (r *Runner) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindUnknown, "generate",
			"canceled while waiting for admission", err)
	}
	defer r.sem.Release(1)

	specs, err := SizesFor(req.Family)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Family:   req.Family,
		Total:    len(specs),
		Outcomes: make([]Outcome, 0, len(specs)),
	}
	r.logger.Info("run %s: generating %d %s icons into %s",
		result.RunID, len(specs), req.Family, req.OutputDir)

	if err := ensureOutputDir(req.OutputDir); err != nil {
		return r.finish(result, StatusAborted, err)
	}

	if req.Source == nil {
		err := platformerrors.New(platformerrors.KindInvalidImage, "generate",
			"no source image supplied")
		return r.finish(result, StatusAborted, err)
	}

	policy, err := PolicyFor(req.Family)
	if err != nil {
		return nil, err
	}
	if err := Validate(req.Source.Width, req.Source.Height, policy); err != nil {
		if platformerrors.IsKind(err, platformerrors.KindAspectRatio) {
			result.Observed = float64(req.Source.Width) / float64(req.Source.Height)
			result.Expected = policy.TargetRatio
			return r.finish(result, StatusValidationFailed, err)
		}
		return r.finish(result, StatusAborted, err)
	}

	for i, spec := range specs {
		// Cancellation is observed between entries, never mid-render.
		if err := ctx.Err(); err != nil {
			wrapped := platformerrors.Wrap(platformerrors.KindUnknown, "generate",
				"run canceled", err)
			return r.finish(result, StatusAborted, wrapped)
		}

		outcome := Outcome{Name: spec.Name}
		data, err := r.renderer.RenderPNG(req.Source, spec.Width, spec.Height)
		if err == nil {
			err = WriteFile(req.OutputDir, spec.Name, data)
		}
		if err != nil {
			// Per-entry isolation: record and keep going.
			outcome.Reason = err.Error()
			r.logger.Warn("run %s: %s failed: %v", result.RunID, spec.Name, err)
		} else {
			outcome.Path = filepath.Join(req.OutputDir, spec.Name)
			r.logger.Debug("run %s: wrote %s (%dx%d)",
				result.RunID, spec.Name, spec.Width, spec.Height)
		}
		result.Outcomes = append(result.Outcomes, outcome)

		done := i + 1
		if req.Progress != nil {
			req.Progress(done, len(specs))
		}
		r.bus.Publish(eventbus.TopicProgress, result.RunID, done, len(specs), spec.Name)
	}

	status := StatusFullSuccess
	if len(result.Failed()) > 0 {
		status = StatusPartialSuccess
	}
	res, _ := r.finish(result, status, nil)
	return res, nil
}

func (r *Runner) finish(result *Result, status Status, cause error) (*Result, error) {
	result.Status = status
	if cause != nil {
		result.Reason = cause.Error()
	}
	switch status {
	case StatusFullSuccess:
		r.logger.Info("run %s: generated %d/%d icons", result.RunID, result.Total, result.Total)
	case StatusPartialSuccess:
		r.logger.Warn("run %s: generated %d/%d icons, %d failed",
			result.RunID, result.Total-len(result.Failed()), result.Total, len(result.Failed()))
	default:
		r.logger.Error("run %s: %s: %v", result.RunID, status, cause)
	}
	r.bus.Publish(eventbus.TopicCompleted, result.RunID, string(status))
	return result, cause
}
