package source

import "errors"

// Sentinel error kinds for dataset loading.
var (
	ErrOpen          = errors.New("open dataset failed")
	ErrEmptyHeader   = errors.New("dataset has no header row")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformed     = errors.New("malformed dataset")
)
