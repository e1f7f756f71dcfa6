package aggregate

import "errors"

// Sentinel error kinds for aggregation.
var (
	ErrEmptyDataset       = errors.New("dataset has no rows")
	ErrDepartmentNotFound = errors.New("department not found")
)
