package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

// runPNG renders the composition once and encodes it.
func (s *Service) runPNG(task *model.ExportTask, req Request) {
	s.setStatus(task, model.TaskStatusStarting)

	outputPath, err := s.reserveOutputPath(PNGBaseName + model.FormatPNG.Extension())
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	s.setStatus(task, model.TaskStatusExporting)

	img := s.composer.Render(req.Composition, req.Media, req.Metrics)

	f, err := os.Create(outputPath)
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create output file: %w", err))
		return
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(outputPath)
		s.setTaskError(task, fmt.Errorf("failed to encode PNG: %w", err))
		return
	}
	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		s.setTaskError(task, fmt.Errorf("failed to write output file: %w", err))
		return
	}

	s.setTaskCompleted(task, outputPath)
}

// reserveOutputPath ensures the export directory exists and returns a free
// path for the given base name.
func (s *Service) reserveOutputPath(name string) (string, error) {
	s.tasksMutex.RLock()
	dir := s.exportDir
	s.tasksMutex.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return platform.UniqueOutputPath(filepath.Join(dir, name)), nil
}
