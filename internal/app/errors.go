package service

import "errors"

// Sentinel errors for the service package.
var (
	// ErrNoInput is returned when Run is called without an input path.
	ErrNoInput = errors.New("no input path configured")
	// ErrNoOutput is returned when a chart or report path is empty.
	ErrNoOutput = errors.New("no output path configured")
)
