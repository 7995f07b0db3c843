package ingest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/memeforge/memeforge/internal/model"
)

type update struct {
	attachment *model.MediaAttachment
	err        error
}

func newTestService(t *testing.T) (*Service, chan update) {
	t.Helper()
	service, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(service.Close)

	updates := make(chan update, 8)
	service.SetUpdateCallback(func(a *model.MediaAttachment, err error) {
		updates <- update{attachment: a, err: err}
	})
	return service, updates
}

func waitUpdate(t *testing.T, updates chan update) update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for update")
		return update{}
	}
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}

func TestAttachImage(t *testing.T) {
	service, updates := newTestService(t)
	path := writePNG(t, t.TempDir(), "photo.png", 64, 48)

	service.Attach(path)
	u := waitUpdate(t, updates)

	if u.err != nil {
		t.Fatalf("Unexpected ingest error: %v", u.err)
	}
	if u.attachment == nil {
		t.Fatal("Expected an attachment")
	}
	if u.attachment.Width != 64 || u.attachment.Height != 48 {
		t.Errorf("Probed %dx%d, expected 64x48", u.attachment.Width, u.attachment.Height)
	}
	if u.attachment.Kind != model.MediaImage {
		t.Errorf("Expected image kind, got %s", u.attachment.Kind)
	}
	if u.attachment.SourceName != "photo.png" {
		t.Errorf("Expected source name photo.png, got %s", u.attachment.SourceName)
	}
	if u.attachment.TempPath == path {
		t.Error("Attachment should reference a temp copy, not the source file")
	}
	if _, err := os.Stat(u.attachment.TempPath); err != nil {
		t.Errorf("Temp copy should exist: %v", err)
	}
	if service.Current() != u.attachment {
		t.Error("Current should return the installed attachment")
	}
}

func TestAttachReplacesAndReleasesPrevious(t *testing.T) {
	service, updates := newTestService(t)
	dir := t.TempDir()

	service.Attach(writePNG(t, dir, "first.png", 10, 10))
	first := waitUpdate(t, updates).attachment
	if first == nil {
		t.Fatal("Expected first attachment")
	}

	service.Attach(writePNG(t, dir, "second.png", 20, 20))
	second := waitUpdate(t, updates).attachment
	if second == nil {
		t.Fatal("Expected second attachment")
	}

	if !first.Released() {
		t.Error("Previous attachment should be released on replacement")
	}
	if second.Released() {
		t.Error("New attachment should stay live")
	}
	if _, err := os.Stat(first.TempPath); !os.IsNotExist(err) {
		t.Error("Released temp copy should be removed")
	}
}

func TestAttachUnsupportedExtension(t *testing.T) {
	service, updates := newTestService(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	service.Attach(path)

	if service.Current() != nil {
		t.Error("Unsupported file should not occupy the slot")
	}
	select {
	case u := <-updates:
		t.Errorf("Unsupported file should be ignored silently, got update %+v", u)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestAttachProbeFailureKeepsPrevious(t *testing.T) {
	service, updates := newTestService(t)
	dir := t.TempDir()

	service.Attach(writePNG(t, dir, "good.png", 10, 10))
	good := waitUpdate(t, updates).attachment
	if good == nil {
		t.Fatal("Expected initial attachment")
	}

	// Valid extension, garbage content.
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	service.Attach(bad)
	u := waitUpdate(t, updates)

	if u.err == nil {
		t.Error("Expected a probe error")
	}
	if u.attachment != good {
		t.Error("Failed ingest should report the surviving attachment")
	}
	if service.Current() != good || good.Released() {
		t.Error("Failed ingest should leave the previous attachment live")
	}
}

func TestStaleIngestDiscarded(t *testing.T) {
	service, updates := newTestService(t)
	path := writePNG(t, t.TempDir(), "late.png", 10, 10)

	// Simulate an attempt superseded before it finishes.
	service.mu.Lock()
	service.generation = 5
	stale := uint64(3)
	service.mu.Unlock()

	service.ingest(stale, path, model.MediaImage)

	if service.Current() != nil {
		t.Error("Stale ingest should not install an attachment")
	}
	select {
	case u := <-updates:
		t.Errorf("Stale ingest should be silent, got update %+v", u)
	default:
	}
}

func TestClear(t *testing.T) {
	service, updates := newTestService(t)

	service.Attach(writePNG(t, t.TempDir(), "img.png", 10, 10))
	attached := waitUpdate(t, updates).attachment
	if attached == nil {
		t.Fatal("Expected attachment")
	}

	service.Clear()
	u := waitUpdate(t, updates)

	if u.attachment != nil || u.err != nil {
		t.Errorf("Clear should report an empty slot, got %+v", u)
	}
	if service.Current() != nil {
		t.Error("Current should be nil after Clear")
	}
	if !attached.Released() {
		t.Error("Clear should release the attachment")
	}
}

func TestCloseRemovesTempDir(t *testing.T) {
	service, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if _, err := os.Stat(service.tempDir); err != nil {
		t.Fatalf("Temp directory should exist: %v", err)
	}

	service.Close()
	if _, err := os.Stat(service.tempDir); !os.IsNotExist(err) {
		t.Error("Close should remove the temp directory")
	}
}
