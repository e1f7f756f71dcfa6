// Package sample generates synthetic employee datasets for trying the report
// out without real HR data.
package sample

// Config holds configuration for the generator.
type Config struct {
	Rows   int    // Number of employee rows
	Seed   uint64 // RNG seed; equal seeds give byte-identical files
	Output string // Destination CSV path
}

// Weighted is a value and its relative frequency.
type Weighted struct {
	Name   string
	Weight int
}

// Departments is the default department mix.
var Departments = []Weighted{
	{"Sales", 30},
	{"Operations", 20},
	{"Customer Service", 15},
	{"R&D", 12},
	{"Marketing", 10},
	{"Finance", 7},
	{"HR", 6},
}

// Regions is the default region mix.
var Regions = []Weighted{
	{"North", 1},
	{"South", 1},
	{"East", 1},
	{"West", 1},
}

// Header is the column row of generated files.
var Header = []string{
	"employee_id",
	"department",
	"region",
	"performance_score",
	"years_experience",
	"satisfaction_rating",
}
