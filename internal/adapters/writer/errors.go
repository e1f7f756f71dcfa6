package writer

import "errors"

// ErrWrite wraps every failure to persist an artifact.
var ErrWrite = errors.New("write artifact failed")
