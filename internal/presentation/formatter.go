// Package presentation converts enrollment snapshots to JSON output.
package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReport formats a full registry report as JSON
func (f *Formatter) FormatReport(report ReportDTO) error {
	return f.encode(report)
}

// FormatTranscript formats one transcript as JSON
func (f *Formatter) FormatTranscript(transcript TranscriptDTO) error {
	return f.encode(transcript)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
