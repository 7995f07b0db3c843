package export

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/memeforge/memeforge/internal/compose"
	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

// FFmpeg constants for the WEBM pipeline
const (
	VideoCodec  = "libvpx-vp9"
	VideoCRF    = "32"
	PixelFormat = "yuv420p"

	SourceFramePattern    = "frame-%05d.png"
	CompositeFramePattern = "meme-%05d.png"

	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="

	// Composite share of the progress bar; encoding takes the rest.
	compositeProgressShare = 0.8
)

// ClipFrameBudget returns how many frames a clip export produces:
// ceil(duration×fps), so the recording always reaches the clip's natural
// end. The pipeline materializes every frame on disk; clips needing more
// than MaxVideoFrames are rejected rather than truncated.
func ClipFrameBudget(durationSeconds float64, fps int) (int, error) {
	if durationSeconds <= 0 {
		return 0, fmt.Errorf("unknown clip duration")
	}
	frames := int(math.Ceil(durationSeconds * float64(fps)))
	if frames > MaxVideoFrames {
		return 0, fmt.Errorf("clip too long to export: %.1fs at %d fps needs %d frames, limit is %d (%.0fs)",
			durationSeconds, fps, frames, MaxVideoFrames, float64(MaxVideoFrames)/float64(fps))
	}
	return frames, nil
}

// runClip exports an attached video: extract frames at the export frame
// rate, composite each one through the shared renderer, encode to WEBM.
func (s *Service) runClip(task *model.ExportTask, req Request, frames int) {
	s.setStatus(task, model.TaskStatusStarting)

	outputPath, err := s.reserveOutputPath(VideoBaseName + model.FormatWebM.Extension())
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	workDir, err := os.MkdirTemp("", "memeforge-frames-")
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create frame directory: %w", err))
		return
	}
	defer os.RemoveAll(workDir)

	// Create context for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.monitorStop(task, cancel)

	s.setStatus(task, model.TaskStatusExporting)

	fps := s.fps()
	if err := s.extractFrames(ctx, req.Composition.Media.TempPath, workDir, fps, frames); err != nil {
		if ctx.Err() == context.Canceled {
			s.setTaskStopped(task)
			return
		}
		s.setTaskError(task, err)
		return
	}

	frames, err = s.compositeFrames(ctx, task, req, workDir)
	if err != nil {
		if ctx.Err() == context.Canceled {
			s.setTaskStopped(task)
			return
		}
		s.setTaskError(task, err)
		return
	}

	if err := s.encodeWebM(ctx, task, workDir, outputPath, fps, frames); err != nil {
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

// extractFrames dumps the source clip as numbered PNGs at the export rate.
func (s *Service) extractFrames(ctx context.Context, sourcePath, workDir string, fps, frames int) error {
	args := s.BuildExtractArgs(sourcePath, filepath.Join(workDir, SourceFramePattern), fps, frames)
	cmd := exec.CommandContext(ctx, platform.FFmpegCommand, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to extract frames: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// compositeFrames runs every extracted frame through the renderer and
// returns the frame count.
func (s *Service) compositeFrames(ctx context.Context, task *model.ExportTask, req Request, workDir string) (int, error) {
	frames, err := filepath.Glob(filepath.Join(workDir, "frame-*.png"))
	if err != nil {
		return 0, fmt.Errorf("failed to list frames: %w", err)
	}
	if len(frames) == 0 {
		return 0, fmt.Errorf("no frames extracted from %s", req.Composition.Media.SourceName)
	}
	sort.Strings(frames)

	metrics := evenMetrics(req.Metrics)
	for i, framePath := range frames {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		frame, err := compose.LoadImage(framePath)
		if err != nil {
			return 0, fmt.Errorf("failed to load frame %d: %w", i+1, err)
		}

		composited := s.composer.Render(req.Composition, frame, metrics)
		outPath := filepath.Join(workDir, fmt.Sprintf(CompositeFramePattern, i+1))
		if err := writePNG(outPath, composited); err != nil {
			return 0, err
		}

		s.setProgress(task, compositeProgressShare*float64(i+1)/float64(len(frames)))
	}

	return len(frames), nil
}

// encodeWebM encodes the composited frames, tracking ffmpeg progress on the
// tail share of the progress bar.
func (s *Service) encodeWebM(ctx context.Context, task *model.ExportTask, workDir, outputPath string, fps, frames int) error {
	args := s.BuildEncodeArgs(filepath.Join(workDir, CompositeFramePattern), outputPath, fps)
	cmd := exec.CommandContext(ctx, platform.FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	totalDuration := float64(frames) / float64(fps)
	go s.monitorEncodeProgress(stderr, task, totalDuration)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}

// encodeStillWebM loops a single composited frame into a short clip.
func (s *Service) encodeStillWebM(ctx context.Context, framePath, outputPath string, fps int) error {
	args := []string{
		"-y",
		"-loop", "1",
		"-i", framePath,
		"-t", strconv.Itoa(StillClipSeconds),
		"-r", strconv.Itoa(fps),
		"-c:v", VideoCodec,
		"-b:v", "0",
		"-crf", VideoCRF,
		"-pix_fmt", PixelFormat,
		"-an",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, platform.FFmpegCommand, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// BuildExtractArgs builds the ffmpeg arguments for frame extraction
func (s *Service) BuildExtractArgs(sourcePath, framePattern string, fps, frames int) []string {
	return []string{
		"-y",              // Overwrite output files
		"-i", sourcePath, // Input clip
		"-vf", fmt.Sprintf("fps=%d", fps), // Resample to export rate
		"-frames:v", strconv.Itoa(frames), // Stop at the clip's own frame count
		framePattern, // Numbered PNG output
	}
}

// BuildEncodeArgs builds the ffmpeg arguments for WEBM encoding
func (s *Service) BuildEncodeArgs(framePattern, outputPath string, fps int) []string {
	return []string{
		"-y",                             // Overwrite output file
		"-framerate", strconv.Itoa(fps), // Input frame rate
		"-i", framePattern, // Numbered PNG input
		"-c:v", VideoCodec, // VP9 in a WEBM container
		"-b:v", "0", // Constant quality mode
		"-crf", VideoCRF, // Quality level
		"-pix_fmt", PixelFormat, // Broad player compatibility
		"-an",                             // No audio track
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// monitorEncodeProgress parses ffmpeg progress output and maps it onto the
// tail share of the task's progress bar.
func (s *Service) monitorEncodeProgress(stderr io.ReadCloser, task *model.ExportTask, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
			timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil {
				continue
			}

			timeSeconds := float64(timeMicroseconds) / 1000000.0
			if totalDuration > 0 {
				encoded := timeSeconds / totalDuration
				if encoded > 1.0 {
					encoded = 1.0
				}
				s.setProgress(task, compositeProgressShare+(1-compositeProgressShare)*encoded)
			}
		}
	}
}

// monitorStop cancels the export context when the task enters Stopping.
func (s *Service) monitorStop(task *model.ExportTask, cancel context.CancelFunc) {
	for {
		status := s.status(task)
		if status == model.TaskStatusStopping {
			cancel()
			return
		}
		if status.IsFinished() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// fps returns the configured export frame rate under the read lock.
func (s *Service) fps() int {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.videoFPS
}

// evenMetrics rounds the canvas down to even dimensions; yuv420p encoding
// rejects odd sizes.
func evenMetrics(m model.RenderMetrics) model.RenderMetrics {
	m.Width &^= 1
	m.Height &^= 1
	return m
}

// writePNG saves one composited frame.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return f.Close()
}
