package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"saucedemo-e2e/models"
	"saucedemo-e2e/utils"
	"strconv"
	"strings"
	"time"
)

// CSVWriter saves check results, one row per case, including the extracted
// values so a failing run can be inspected later.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

var csvHeader = []string{
	"run_id", "case", "mode", "passed", "divergence", "error",
	"raw_values", "values", "dropped", "duration_ms", "checked_at",
}

// Write appends results to the CSV file, writing the header when the file is
// new. Creates the output directory if it does not exist.
func (w *CSVWriter) Write(results []models.CheckResult) error {
	if len(results) == 0 {
		utils.Warn("No results to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	_, statErr := os.Stat(w.path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if isNew {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	for _, r := range results {
		if err := writer.Write(row(r)); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d results → %s", len(results), w.path)
	return nil
}

func row(r models.CheckResult) []string {
	dropped := make([]string, len(r.Dropped))
	for i, d := range r.Dropped {
		dropped[i] = fmt.Sprintf("%d:%s", d.Position, d.Raw)
	}

	return []string{
		r.RunID,
		r.Case,
		r.Mode.String(),
		strconv.FormatBool(r.Passed),
		strconv.Itoa(r.Divergence),
		r.Err,
		strings.Join(r.Raw, " | "),
		strings.Join(r.Values, " | "),
		strings.Join(dropped, " | "),
		strconv.FormatInt(r.Duration.Milliseconds(), 10),
		r.CheckedAt.UTC().Format(time.RFC3339),
	}
}
