package pipeline

import "errors"

var (
	// ErrUsage is returned when the command line invocation is invalid
	ErrUsage = errors.New("invalid usage")

	// ErrInputNotFound is returned when the input file does not exist
	ErrInputNotFound = errors.New("input file not found")

	// ErrMissingAudioStream is returned when the probe finds no audio track
	// and the selected strategy requires one
	ErrMissingAudioStream = errors.New("input has no audio stream")

	// ErrToolExecutionFailed is returned when the external media tool exits nonzero
	ErrToolExecutionFailed = errors.New("media tool execution failed")

	// ErrSeparationFailed is returned when the source-separation tool exits nonzero
	ErrSeparationFailed = errors.New("source separation failed")

	// ErrSeparationOutputMissing is returned when separation succeeded but the
	// expected non-vocal stem cannot be located
	ErrSeparationOutputMissing = errors.New("separation output not found")

	// ErrRemuxFailed is returned when combining the processed streams fails
	ErrRemuxFailed = errors.New("remux failed")
)
