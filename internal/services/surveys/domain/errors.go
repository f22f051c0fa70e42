package domain

import (
	perr "surveyflow/internal/platform/errors"
)

// ErrQueueClosed is returned by Enqueue and Requeue once shutdown began
var ErrQueueClosed = perr.New(perr.ErrorCodeUnavailable, "survey queue is closed")

// Op labels attached to processing failures
const (
	OpEncrypt   = "surveys.encrypt"
	OpPersist   = "surveys.persist"
	OpFastStore = "surveys.faststore"
	OpRefresh   = "surveys.insights.refresh"
)

// ProcessingFailure wraps a failed processor step with its op label, keeping the cause's code
func ProcessingFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return perr.WithOp(perr.Wrap(err, perr.CodeOf(err), "processing failed"), op)
}

// RetriesExhausted is logged when an item is dropped after its last attempt
func RetriesExhausted(responseID string, attempts int, cause error) error {
	return perr.Wrapf(cause, perr.CodeOf(cause), "survey response %s dropped after %d attempts", responseID, attempts)
}

// RefreshCycleFailure wraps an insights refresh error
func RefreshCycleFailure(err error) error {
	if err == nil {
		return nil
	}
	return perr.WithOp(perr.Wrap(err, perr.CodeOf(err), "refresh cycle failed"), OpRefresh)
}
