// Package ingest owns the single media attachment slot. Dropped or picked
// files are copied into an app-owned temp directory, probed for natural
// dimensions, and installed into the slot; the previous occupant is released
// on replacement. Ingest runs off the UI goroutine, so every attempt carries
// a generation number and stale results are discarded.
package ingest

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "image/gif" // register decoders for probing
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

// Service handles media attachment operations
type Service struct {
	mu         sync.Mutex
	current    *model.MediaAttachment
	generation uint64
	tempDir    string
	onUpdate   func(*model.MediaAttachment, error) // callback for UI updates
}

// NewService creates a new ingest service with its own temp directory
func NewService() (*Service, error) {
	tempDir, err := os.MkdirTemp("", "memeforge-media-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &Service{tempDir: tempDir}, nil
}

// SetUpdateCallback sets the callback function for attachment updates
func (s *Service) SetUpdateCallback(callback func(*model.MediaAttachment, error)) {
	s.onUpdate = callback
}

// Attach ingests the file at path. Files outside the accept filter are
// silently ignored; the live attachment is untouched until a replacement is
// fully probed.
func (s *Service) Attach(path string) {
	var kind model.MediaKind
	switch {
	case platform.IsImagePath(path):
		kind = model.MediaImage
	case platform.IsVideoPath(path):
		kind = model.MediaVideo
	default:
		log.Printf("Ignoring unsupported file: %s", path)
		return
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go s.ingest(gen, path, kind)
}

// Current returns the live attachment, or nil
func (s *Service) Current() *model.MediaAttachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear releases the live attachment and supersedes any in-flight ingest
func (s *Service) Clear() {
	s.mu.Lock()
	s.generation++
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	s.notifyUpdate(nil, nil)
}

// Close clears the slot and removes the temp directory
func (s *Service) Close() {
	s.Clear()
	if err := os.RemoveAll(s.tempDir); err != nil {
		log.Printf("Failed to remove temp directory %s: %v", s.tempDir, err)
	}
}

// ingest copies, probes, and installs one attachment attempt.
func (s *Service) ingest(gen uint64, path string, kind model.MediaKind) {
	tempPath, err := s.copyToTemp(path)
	if err != nil {
		s.failIngest(gen, err)
		return
	}

	attachment := &model.MediaAttachment{
		TempPath:   tempPath,
		SourceName: filepath.Base(path),
		Kind:       kind,
	}

	if err := probe(attachment); err != nil {
		attachment.Release()
		s.failIngest(gen, err)
		return
	}

	s.install(gen, attachment)
}

// install swaps the attachment into the slot unless a newer attempt or a
// Clear has superseded this one.
func (s *Service) install(gen uint64, attachment *model.MediaAttachment) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Printf("Discarding stale ingest of %s", attachment.SourceName)
		attachment.Release()
		return
	}
	prev := s.current
	s.current = attachment
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	s.notifyUpdate(attachment, nil)
}

// failIngest reports a failed attempt. Superseded attempts fail silently;
// the user has already moved on.
func (s *Service) failIngest(gen uint64, err error) {
	s.mu.Lock()
	stale := gen != s.generation
	current := s.current
	s.mu.Unlock()

	if stale {
		return
	}
	log.Printf("Ingest failed: %v", err)
	s.notifyUpdate(current, err)
}

// copyToTemp copies the source file into the app-owned temp directory. The
// copy keeps the composition stable when the original is moved or deleted.
func (s *Service) copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(s.tempDir, "media-*"+filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("failed to create temp copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to copy media file: %w", err)
	}
	return dst.Name(), nil
}

// probe fills in the attachment's natural dimensions, and duration for
// videos.
func probe(attachment *model.MediaAttachment) error {
	if attachment.IsVideo() {
		info, err := platform.ProbeVideo(attachment.TempPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		attachment.Width = info.Width
		attachment.Height = info.Height
		attachment.Duration = info.Duration
		return nil
	}

	f, err := os.Open(attachment.TempPath)
	if err != nil {
		return fmt.Errorf("failed to open media copy: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("degenerate image dimensions %dx%d", cfg.Width, cfg.Height)
	}
	attachment.Width = cfg.Width
	attachment.Height = cfg.Height
	return nil
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(attachment *model.MediaAttachment, err error) {
	if s.onUpdate != nil {
		s.onUpdate(attachment, err)
	}
}
