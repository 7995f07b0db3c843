package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// External tool and probe constants
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	FFprobeLogLevel      = "error"
	FFprobeStreamEntries = "stream=width,height"
	FFprobeFormatEntries = "format=duration"
	FFprobeOutputFormat  = "csv=p=0"
	FFprobeVideoStream   = "v:0"
)

// HasFFmpeg reports whether ffmpeg is reachable on PATH.
func HasFFmpeg() bool {
	_, err := exec.LookPath(FFmpegCommand)
	return err == nil
}

// VideoInfo holds the probed natural dimensions and duration of a video.
type VideoInfo struct {
	Width    int
	Height   int
	Duration float64 // seconds
}

// ProbeVideo reads a video's natural width/height and duration using ffprobe.
func ProbeVideo(filePath string) (VideoInfo, error) {
	var info VideoInfo

	cmd := exec.Command(FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-select_streams", FFprobeVideoStream,
		"-show_entries", FFprobeStreamEntries,
		"-of", FFprobeOutputFormat,
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return info, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	fields := strings.Split(strings.TrimSpace(string(output)), ",")
	if len(fields) < 2 {
		return info, fmt.Errorf("unexpected ffprobe stream output: %q", output)
	}
	info.Width, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return info, fmt.Errorf("failed to parse width: %w", err)
	}
	info.Height, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return info, fmt.Errorf("failed to parse height: %w", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return info, fmt.Errorf("degenerate video dimensions %dx%d", info.Width, info.Height)
	}

	info.Duration, err = ProbeDuration(filePath)
	if err != nil {
		return info, err
	}

	return info, nil
}

// ExtractFrame writes a single frame of the video to outPath as PNG. The
// preview uses it as the poster image for attached clips.
func ExtractFrame(videoPath, outPath string, atSeconds float64) error {
	cmd := exec.Command(FFmpegCommand,
		"-y",
		"-ss", strconv.FormatFloat(atSeconds, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		outPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to extract frame: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ProbeDuration reads a media file's duration in seconds using ffprobe.
func ProbeDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeFormatEntries,
		"-of", FFprobeOutputFormat,
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}
