package model

import (
	"strings"
	"time"
)

// ExportFormat names the container an export task produces.
type ExportFormat string

const (
	FormatPNG  ExportFormat = "png"
	FormatWebM ExportFormat = "webm"
	FormatAVI  ExportFormat = "avi"
)

// Extension returns the file extension for the format, with the dot.
func (f ExportFormat) Extension() string {
	return "." + string(f)
}

// ExportTask represents a single export operation
type ExportTask struct {
	ID         string
	Format     ExportFormat
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayName returns the output filename, or the format when the path
// is not known yet.
func (t *ExportTask) GetDisplayName() string {
	if t.OutputPath != "" {
		parts := strings.FieldsFunc(t.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return strings.ToUpper(string(t.Format)) + " export"
}
