package model

import (
	"testing"
	"time"
)

func TestExportFormat_Extension(t *testing.T) {
	tests := []struct {
		format   ExportFormat
		expected string
	}{
		{FormatPNG, ".png"},
		{FormatWebM, ".webm"},
		{FormatAVI, ".avi"},
	}

	for _, test := range tests {
		if got := test.format.Extension(); got != test.expected {
			t.Errorf("Extension() for %s = %s, expected %s", test.format, got, test.expected)
		}
	}
}

func TestExportTask_GetDisplayName(t *testing.T) {
	tests := []struct {
		outputPath string
		format     ExportFormat
		expected   string
	}{
		{"/home/user/Pictures/meme.png", FormatPNG, "meme.png"},
		{"C:\\Users\\user\\meme.webm", FormatWebM, "meme.webm"},
		{"", FormatWebM, "WEBM export"},
		{"", FormatPNG, "PNG export"},
	}

	for _, test := range tests {
		task := &ExportTask{OutputPath: test.outputPath, Format: test.format}
		if got := task.GetDisplayName(); got != test.expected {
			t.Errorf("GetDisplayName() with path='%s' format='%s' = '%s', expected '%s'",
				test.outputPath, test.format, got, test.expected)
		}
	}
}

func TestExportTask_Creation(t *testing.T) {
	now := time.Now()
	task := &ExportTask{
		ID:         "export-1",
		Format:     FormatPNG,
		OutputPath: "/tmp/meme.png",
		Status:     TaskStatusPending,
		StartedAt:  now,
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.Progress != 0 {
		t.Errorf("Expected zero progress, got %f", task.Progress)
	}
	if task.StartedAt != now {
		t.Error("StartedAt should match creation time")
	}
}
