package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Table is a fully rendered CSV export: a fixed filename plus header and
// data rows.
type Table struct {
	Filename string
	Headers  []string
	Records  [][]string
}

// CSVWriter writes analysis tables under a base output directory.
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteTable writes a table to its fixed filename under the output
// directory, creating the directory if needed.
func (w *CSVWriter) WriteTable(t Table) error {
	fullPath := filepath.Join(w.outDir, t.Filename)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(t.Records)))

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return StreamTable(file, t, true)
}

// StreamTable writes a table's CSV bytes to any writer. The UTF-8 BOM is
// what makes Excel open the file with the right encoding.
func StreamTable(w io.Writer, t Table, bomPrefix bool) error {
	if bomPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if len(t.Headers) > 0 {
		if err := cw.Write(t.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range t.Records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
