// Package exporter renders analysis results as CSV, either streamed to an
// HTTP response or written under an output directory by the batch CLI.
// Every analysis has a fixed export filename so downstream spreadsheets
// and scripts can rely on stable names.
package exporter
