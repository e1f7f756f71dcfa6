package sample

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/headcount/pkg/logger"
)

// Ranges of the generated numeric columns.
const (
	performanceMin    = 50.0
	performanceRange  = 50.0
	experienceMax     = 30
	satisfactionMin   = 1.0
	satisfactionRange = 4.0

	ctxCheckEvery = 1024
)

// Record is one generated employee row.
type Record struct {
	EmployeeID         string
	Department         string
	Region             string
	PerformanceScore   float64
	YearsExperience    int
	SatisfactionRating float64
}

// Generator produces records from a seeded source.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// NewGenerator creates a Generator. Equal seeds produce equal sequences,
// employee IDs included.
func NewGenerator(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

// Next returns the next record.
func (g *Generator) Next() (Record, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return Record{}, fmt.Errorf("employee id: %w", err)
	}

	// Experienced staff score slightly higher.
	years := g.rng.IntN(experienceMax + 1)
	perf := performanceMin + g.rng.Float64()*performanceRange*0.8 + float64(years)/experienceMax*performanceRange*0.2

	return Record{
		EmployeeID:         id.String(),
		Department:         g.pick(Departments),
		Region:             g.pick(Regions),
		PerformanceScore:   perf,
		YearsExperience:    years,
		SatisfactionRating: satisfactionMin + g.rng.Float64()*satisfactionRange,
	}, nil
}

func (g *Generator) pick(choices []Weighted) string {
	total := 0
	for _, c := range choices {
		total += c.Weight
	}
	n := g.rng.IntN(total)
	for _, c := range choices {
		if n < c.Weight {
			return c.Name
		}
		n -= c.Weight
	}
	return choices[len(choices)-1].Name
}

// Write emits a header and rows records as CSV.
func (g *Generator) Write(ctx context.Context, w io.Writer, rows int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(Header))
	for i := 0; i < rows; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r, err := g.Next()
		if err != nil {
			return err
		}
		row[0] = r.EmployeeID
		row[1] = r.Department
		row[2] = r.Region
		row[3] = strconv.FormatFloat(r.PerformanceScore, 'f', 1, 64)
		row[4] = strconv.Itoa(r.YearsExperience)
		row[5] = strconv.FormatFloat(r.SatisfactionRating, 'f', 1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Sink persists a generated file.
type Sink interface {
	Write(ctx context.Context, path string, r io.Reader) error
}

// Run generates cfg.Rows records and hands the file to sink.
func Run(ctx context.Context, cfg *Config, sink Sink) error {
	if cfg.Rows < 0 {
		return fmt.Errorf("rows must not be negative: %d", cfg.Rows)
	}
	if cfg.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}

	logger.Get().Info(ctx, "generating employee dataset",
		logger.Int("rows", cfg.Rows),
		logger.Any("seed", cfg.Seed),
	)

	var buf bytes.Buffer
	if err := NewGenerator(cfg.Seed).Write(ctx, &buf, cfg.Rows); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := sink.Write(ctx, cfg.Output, &buf); err != nil {
		return err
	}

	logger.Get().Info(ctx, "employee dataset written", logger.String("path", cfg.Output))
	return nil
}
