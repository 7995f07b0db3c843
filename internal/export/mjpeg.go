package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"github.com/memeforge/memeforge/internal/model"
)

// JPEG quality for the MJPEG fallback container.
const aviFrameQuality = 90

// runStillClip exports a short clip of the still composition. With ffmpeg
// available it loops one frame into a WEBM; otherwise it writes an MJPEG
// AVI directly, so video export of a still never needs external tools.
func (s *Service) runStillClip(task *model.ExportTask, req Request) {
	s.setStatus(task, model.TaskStatusStarting)

	outputPath, err := s.reserveOutputPath(VideoBaseName + task.Format.Extension())
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	// Create context for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.monitorStop(task, cancel)

	s.setStatus(task, model.TaskStatusExporting)

	metrics := evenMetrics(req.Metrics)
	frame := s.composer.Render(req.Composition, req.Media, metrics)
	fps := s.fps()

	if task.Format == model.FormatAVI {
		err = s.writeStillAVI(ctx, task, frame, outputPath, fps)
	} else {
		err = s.encodeStillFrame(ctx, frame, outputPath, fps)
	}
	if err != nil {
		os.Remove(outputPath)
		if ctx.Err() == context.Canceled {
			s.setTaskStopped(task)
			return
		}
		s.setTaskError(task, err)
		return
	}

	s.setTaskCompleted(task, outputPath)
}

// encodeStillFrame writes the frame to a temp file and loops it with ffmpeg.
func (s *Service) encodeStillFrame(ctx context.Context, frame image.Image, outputPath string, fps int) error {
	workDir, err := os.MkdirTemp("", "memeforge-still-")
	if err != nil {
		return fmt.Errorf("failed to create frame directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	framePath := filepath.Join(workDir, "frame.png")
	if err := writePNG(framePath, frame); err != nil {
		return err
	}
	return s.encodeStillWebM(ctx, framePath, outputPath, fps)
}

// writeStillAVI repeats one JPEG-encoded frame for the clip duration.
func (s *Service) writeStillAVI(ctx context.Context, task *model.ExportTask, frame image.Image, outputPath string, fps int) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: aviFrameQuality}); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	w := int32(frame.Bounds().Dx())
	h := int32(frame.Bounds().Dy())
	writer, err := mjpeg.New(outputPath, w, h, int32(fps))
	if err != nil {
		return fmt.Errorf("failed to create AVI writer: %w", err)
	}

	total := StillClipSeconds * fps
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			writer.Close()
			return ctx.Err()
		}
		if err := writer.AddFrame(buf.Bytes()); err != nil {
			writer.Close()
			return fmt.Errorf("failed to add frame: %w", err)
		}
		s.setProgress(task, float64(i+1)/float64(total))
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize AVI: %w", err)
	}
	return nil
}
