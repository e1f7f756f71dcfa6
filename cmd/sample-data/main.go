package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/headcount/internal/adapters/writer"
	"github.com/okian/headcount/internal/sample"
	"github.com/okian/headcount/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows    = 500
	defaultSeed    = 2025
	defaultOutput  = "employee_data.csv"
	defaultTimeout = time.Minute
)

func main() {
	var (
		rows   = flag.Int("rows", defaultRows, "Number of employee rows to generate")
		seed   = flag.Uint64("seed", defaultSeed, "Random seed; the same seed reproduces the same file")
		output = flag.String("output", defaultOutput, "Destination CSV path")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &sample.Config{Rows: *rows, Seed: *seed, Output: *output}
	if err := sample.Run(ctx, cfg, writer.New()); err != nil {
		logger.Get().Error(ctx, "sample generation failed", logger.Error(err))
		os.Exit(1)
	}
}

func showHelp() {
	os.Stdout.WriteString(`Headcount Sample Data Tool
==========================

Writes a synthetic employee CSV for the headcount report.

Usage:
  go run ./cmd/sample-data [options]

Options:
  -rows int
        Number of employee rows to generate (default 500)
  -seed uint
        Random seed; the same seed reproduces the same file (default 2025)
  -output string
        Destination CSV path (default "employee_data.csv")
  -help
        Show this help message

Examples:
  # Generate the default dataset next to the report tool
  go run ./cmd/sample-data

  # A larger dataset with a different seed
  go run ./cmd/sample-data -rows 5000 -seed 7 -output data/employees.csv
`)
}
