package workflow

import (
	"strconv"
	"strings"
)

// CompensationError reports a step failure whose compensation itself
// failed: the underlying records may now be inconsistent and need
// operator attention.
type CompensationError struct {
	executionErr     error
	compensationErrs []error
}

func (e *CompensationError) ExecutionError() error {
	return e.executionErr
}

func (e *CompensationError) CompensationErrors() []error {
	return e.compensationErrs
}

func (e *CompensationError) Error() string {
	var sb strings.Builder

	sb.WriteString("compensation error: execution error '")
	sb.WriteString(e.executionErr.Error())
	sb.WriteString("' resulted in following compensation errors: ")

	for idx, err := range e.compensationErrs {
		if idx > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString("[")
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteString("] ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap exposes the execution error to errors.Is/As.
func (e *CompensationError) Unwrap() error {
	return e.executionErr
}

func NewCompensationError(executionErr error, compensationErrs ...error) *CompensationError {
	return &CompensationError{
		executionErr:     executionErr,
		compensationErrs: compensationErrs,
	}
}

var _ error = &CompensationError{}
