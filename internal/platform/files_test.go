package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomePicturesDir(t *testing.T) {
	picturesDir, err := GetHomePicturesDir()
	if err != nil {
		t.Fatalf("Failed to get pictures directory: %v", err)
	}

	if picturesDir == "" {
		t.Fatal("Pictures directory is empty")
	}

	if filepath.Base(picturesDir) != "Pictures" {
		t.Errorf("Expected directory to end with 'Pictures', got: %s", picturesDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"clip.mp4", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, test := range tests {
		if got := IsImagePath(test.path); got != test.expected {
			t.Errorf("IsImagePath(%s) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestIsVideoPath(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.webm", true},
		{"photo.png", false},
		{"archive.zip", false},
	}

	for _, test := range tests {
		if got := IsVideoPath(test.path); got != test.expected {
			t.Errorf("IsVideoPath(%s) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestUniqueOutputPath(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "meme.png")

	// Free path is returned unchanged.
	if got := UniqueOutputPath(path); got != path {
		t.Errorf("UniqueOutputPath(%s) = %s, expected unchanged", path, got)
	}

	// Taken path gets a numbered suffix.
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	expected := filepath.Join(tempDir, "meme (1).png")
	if got := UniqueOutputPath(path); got != expected {
		t.Errorf("UniqueOutputPath(%s) = %s, expected %s", path, got, expected)
	}

	// And keeps counting when that name is taken too.
	if err := os.WriteFile(expected, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	expected2 := filepath.Join(tempDir, "meme (2).png")
	if got := UniqueOutputPath(path); got != expected2 {
		t.Errorf("UniqueOutputPath(%s) = %s, expected %s", path, got, expected2)
	}
}

func TestProbeVideo_MissingFile(t *testing.T) {
	if !HasFFmpeg() {
		t.Skip("ffmpeg/ffprobe not installed")
	}

	if _, err := ProbeVideo(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("Expected error probing a missing file, got nil")
	}
}
