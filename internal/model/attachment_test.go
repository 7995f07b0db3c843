package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMediaAttachment_AspectRatio(t *testing.T) {
	tests := []struct {
		width    int
		height   int
		expected float64
	}{
		{1920, 1080, 1920.0 / 1080.0},
		{900, 900, 1.0},
		{100, 0, 0}, // degenerate height must not divide by zero
	}

	for _, test := range tests {
		m := &MediaAttachment{Width: test.width, Height: test.height}
		if got := m.AspectRatio(); got != test.expected {
			t.Errorf("AspectRatio() for %dx%d = %f, expected %f", test.width, test.height, got, test.expected)
		}
	}
}

func TestMediaAttachment_ReleaseOnce(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "attachment.png")
	if err := os.WriteFile(tmp, []byte("data"), 0o644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	m := &MediaAttachment{TempPath: tmp, Kind: MediaImage}

	m.Release()
	if !m.Released() {
		t.Error("Expected attachment to be released")
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Error("Temp file should be removed on release")
	}

	// Second release is a no-op, never a double removal error.
	m.Release()
	if !m.Released() {
		t.Error("Attachment should stay released")
	}
}

func TestMediaAttachment_IsVideo(t *testing.T) {
	img := &MediaAttachment{Kind: MediaImage}
	vid := &MediaAttachment{Kind: MediaVideo}

	if img.IsVideo() {
		t.Error("Image attachment reported as video")
	}
	if !vid.IsVideo() {
		t.Error("Video attachment not reported as video")
	}
}
