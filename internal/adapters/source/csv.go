// Package source loads employee datasets from delimited text files.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/okian/headcount/internal/domain/model"
)

// ctxCheckEvery bounds how many rows are read between cancellation checks.
const ctxCheckEvery = 1024

// Option applies a configuration option to the CSV reader.
type Option func(*CSV)

// WithDelimiter sets the field separator (comma by default).
func WithDelimiter(r rune) Option {
	return func(c *CSV) {
		if r != 0 {
			c.delimiter = r
		}
	}
}

// CSV reads employee rows from a header-first delimited file.
type CSV struct {
	delimiter rune
}

// NewCSV creates a CSV source.
func NewCSV(opts ...Option) *CSV {
	c := &CSV{delimiter: ','}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load opens path and reads every row into a Dataset.
func (c *CSV) Load(ctx context.Context, path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	employees, err := c.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &model.Dataset{Source: path, Employees: employees}, nil
}

// Read parses r. Column order is free and extra columns are ignored; every
// column in model.RequiredColumns must be present. Empty numeric cells load
// as NaN.
func (c *CSV) Read(ctx context.Context, r io.Reader) ([]model.Employee, error) {
	// Spreadsheet exports often prefix a UTF-8 BOM that would otherwise end
	// up inside the first header name.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = c.delimiter
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}

	idx, err := columnIndex(headers)
	if err != nil {
		return nil, err
	}

	var employees []model.Employee
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := reader.FieldPos(0)

		e, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// header positions of the required columns.
type index struct {
	department, region, performance, experience, satisfaction int
}

func columnIndex(headers []string) (index, error) {
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := index{
		department:   lookup(model.ColumnDepartment),
		region:       lookup(model.ColumnRegion),
		performance:  lookup(model.ColumnPerformanceScore),
		experience:   lookup(model.ColumnYearsExperience),
		satisfaction: lookup(model.ColumnSatisfactionRating),
	}
	if len(missing) > 0 {
		return index{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx index, line int) (model.Employee, error) {
	var err error
	num := func(col int, name string) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = parseNumber(row[col])
		if err != nil {
			err = fmt.Errorf("%w: line %d column %s: %w", ErrMalformed, line, name, err)
		}
		return v
	}

	e := model.Employee{
		Department:         strings.TrimSpace(row[idx.department]),
		Region:             strings.TrimSpace(row[idx.region]),
		PerformanceScore:   num(idx.performance, model.ColumnPerformanceScore),
		YearsExperience:    num(idx.experience, model.ColumnYearsExperience),
		SatisfactionRating: num(idx.satisfaction, model.ColumnSatisfactionRating),
	}
	return e, err
}

// parseNumber maps an empty cell to NaN and everything else through cast.
func parseNumber(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return cast.ToFloat64E(cell)
}
