package model

import (
	"log"
	"os"
	"sync"
)

// MediaKind tags the attachment media type.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaAttachment is the single optional image or video added to the
// composition. TempPath points at an app-owned copy of the dropped file;
// the copy is the resource handle and Release removes it exactly once.
// At most one attachment is live at a time; the ingest service owns the
// slot and calls Release on replacement and on teardown.
type MediaAttachment struct {
	TempPath   string
	SourceName string
	Kind       MediaKind
	Width      int
	Height     int
	Duration   float64 // seconds, video only

	releaseOnce sync.Once
	released    bool
}

// AspectRatio returns width/height of the decoded media.
func (m *MediaAttachment) AspectRatio() float64 {
	if m.Height == 0 {
		return 0
	}
	return float64(m.Width) / float64(m.Height)
}

// IsVideo reports whether the attachment is a video.
func (m *MediaAttachment) IsVideo() bool {
	return m.Kind == MediaVideo
}

// Release removes the temp copy. Safe to call more than once; only the
// first call does anything.
func (m *MediaAttachment) Release() {
	m.releaseOnce.Do(func() {
		m.released = true
		if m.TempPath == "" {
			return
		}
		if err := os.Remove(m.TempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to release attachment %s: %v", m.TempPath, err)
		}
	})
}

// Released reports whether Release has run.
func (m *MediaAttachment) Released() bool {
	return m.released
}
