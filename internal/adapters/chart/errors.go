package chart

import "errors"

// Sentinel error kinds for chart rendering.
var (
	ErrHighlightMissing = errors.New("highlight department not in data")
	ErrNoBars           = errors.New("no departments to draw")
	ErrRender           = errors.New("chart render failed")
)
