package usecases

import (
	"errors"
	"fmt"
)

// ErrEmptyMessage is returned when a chat request carries no message.
// It maps to a client error at the HTTP boundary and is never retried.
var ErrEmptyMessage = errors.New("メッセージが送信されていません")

// Stage identifies where in the pipeline a request failed.
type Stage string

const (
	StageValidation Stage = "validation"
	StageRetrieval  Stage = "retrieval"
	StageGeneration Stage = "generation"
)

// PipelineError tags a failure with the pipeline stage it occurred in.
// Validation failures are client errors; everything else is a server error
// whose cause is logged but never returned to the client.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// failed wraps err with its stage.
func failed(stage Stage, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}

// StageOf reports the pipeline stage of err, or an empty stage for errors
// that did not come out of the pipeline.
func StageOf(err error) Stage {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}
