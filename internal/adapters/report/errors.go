package report

import "errors"

// ErrBuild is returned when the report template cannot be executed.
var ErrBuild = errors.New("report build failed")
