// Package model contains domain models passed between layers.
package model

// Columns every employee dataset must carry.
const (
	ColumnDepartment         = "department"
	ColumnRegion             = "region"
	ColumnPerformanceScore   = "performance_score"
	ColumnYearsExperience    = "years_experience"
	ColumnSatisfactionRating = "satisfaction_rating"
)

// RequiredColumns lists the mandatory headers in canonical order.
var RequiredColumns = []string{
	ColumnDepartment,
	ColumnRegion,
	ColumnPerformanceScore,
	ColumnYearsExperience,
	ColumnSatisfactionRating,
}

// Employee is one row of the input table. Numeric fields are NaN when the
// source cell was empty.
type Employee struct {
	Department         string
	Region             string
	PerformanceScore   float64
	YearsExperience    float64
	SatisfactionRating float64
}

// Dataset is the full record set loaded for one run.
type Dataset struct {
	Source    string // path the rows were read from
	Employees []Employee
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Employees)
}
