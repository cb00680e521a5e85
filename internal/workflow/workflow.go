package workflow

import (
	"context"
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Workflow executes a sequence of steps as a saga: when a step fails,
// the steps already applied are compensated in reverse order. The store
// offers no multi-record transaction, so this is how the close+reopen
// pair of a module stays atomic from the caller's point of view.
type Workflow struct {
	steps []Step
}

func (w *Workflow) Execute(ctx context.Context) error {
	for idx, step := range w.steps {
		if executionErr := step.Execute(ctx); executionErr != nil {
			slog.ErrorContext(ctx, "workflow step failed, compensating",
				slog.String("step", step.Name()),
				slogx.Error(errors.WithStack(executionErr)),
			)

			if compensationErrs := w.compensate(ctx, idx-1); compensationErrs != nil {
				return errors.WithStack(NewCompensationError(executionErr, compensationErrs...))
			}

			return errors.WithStack(executionErr)
		}
	}

	return nil
}

// compensate unwinds every step up to and including fromIndex, newest
// first. The failed step itself is never compensated: it must not leave
// partial effects behind.
func (w *Workflow) compensate(ctx context.Context, fromIndex int) []error {
	var errs []error

	for idx := fromIndex; idx >= 0; idx -= 1 {
		step := w.steps[idx]

		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "workflow step compensation failed",
				slog.String("step", step.Name()),
				slogx.Error(errors.WithStack(err)),
			)

			errs = append(errs, errors.WithStack(err))
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func New(steps ...Step) *Workflow {
	return &Workflow{steps: steps}
}
