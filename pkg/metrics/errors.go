package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrTextfile = errors.New("metrics textfile write failed")
)
