// Package aggregate computes the department frequency counts and means that
// feed the chart and the report.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/headcount/internal/domain/model"
)

// DefaultHighlight is the department singled out when none is configured.
const DefaultHighlight = "R&D"

const percentScale = 100

// DepartmentCount is one bar of the distribution.
type DepartmentCount struct {
	Name  string
	Count int
}

// Highlight holds the statistics of the singled-out department. When Present
// is false Count is zero and every mean is NaN.
type Highlight struct {
	Name             string
	Present          bool
	Count            int
	Percent          float64
	MeanPerformance  float64
	MeanExperience   float64
	MeanSatisfaction float64
}

// Summary is the result of a single aggregation pass.
type Summary struct {
	Total           int
	Departments     []DepartmentCount // descending by count, ties by name
	DistinctRegions int
	MeanPerformance float64
	Highlight       Highlight
}

// Summarize counts rows per department and computes overall and highlighted
// department means. Exact string equality selects the highlighted rows.
//
// An empty input returns ErrEmptyDataset instead of NaN percentages.
func Summarize(employees []model.Employee, highlight string) (Summary, error) {
	if len(employees) == 0 {
		return Summary{}, ErrEmptyDataset
	}

	counts := make(map[string]int)
	regions := make(map[string]struct{})
	var perf, hlPerf, hlExp, hlSat meanAcc
	hl := Highlight{Name: highlight}

	for _, e := range employees {
		counts[e.Department]++
		regions[e.Region] = struct{}{}
		perf.add(e.PerformanceScore)

		if e.Department == highlight {
			hl.Count++
			hlPerf.add(e.PerformanceScore)
			hlExp.add(e.YearsExperience)
			hlSat.add(e.SatisfactionRating)
		}
	}

	total := len(employees)
	hl.Present = hl.Count > 0
	hl.Percent = float64(hl.Count) / float64(total) * percentScale
	hl.MeanPerformance = hlPerf.mean()
	hl.MeanExperience = hlExp.mean()
	hl.MeanSatisfaction = hlSat.mean()

	return Summary{
		Total:           total,
		Departments:     rank(counts),
		DistinctRegions: len(regions),
		MeanPerformance: perf.mean(),
		Highlight:       hl,
	}, nil
}

// rank orders counts descending; equal counts fall back to name so the
// display order never depends on map iteration.
func rank(counts map[string]int) []DepartmentCount {
	out := make([]DepartmentCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, DepartmentCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DistinctDepartments returns the number of department values.
func (s Summary) DistinctDepartments() int { return len(s.Departments) }

// ByName returns the department counts in ascending name order.
func (s Summary) ByName() []DepartmentCount {
	out := append([]DepartmentCount(nil), s.Departments...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the department names in ascending order.
func (s Summary) Names() []string {
	byName := s.ByName()
	names := make([]string, len(byName))
	for i, d := range byName {
		names[i] = d.Name
	}
	return names
}

// CountSum adds up every department count; equals Total for any summary
// built by Summarize.
func (s Summary) CountSum() int {
	sum := 0
	for _, d := range s.Departments {
		sum += d.Count
	}
	return sum
}

// IndexOf returns the display position of name in Departments.
func (s Summary) IndexOf(name string) (int, error) {
	for i, d := range s.Departments {
		if d.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrDepartmentNotFound, name)
}

// Mean averages values, skipping NaN. It returns NaN when nothing remains.
func Mean(values []float64) float64 {
	var acc meanAcc
	for _, v := range values {
		acc.add(v)
	}
	return acc.mean()
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	m.sum += v
	m.n++
}

func (m *meanAcc) mean() float64 {
	if m.n == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.n)
}
