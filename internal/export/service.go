// Package export turns compositions into files on disk. PNG export is a
// single render and encode. Video export re-composites every frame of the
// attached clip through the shared renderer, so the result matches the
// preview; without an attached video it produces a short clip of the still
// meme instead.
package export

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memeforge/memeforge/internal/compose"
	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

const (
	TaskIDPrefix = "export-"

	// PNGBaseName and VideoBaseName are the default output names; collisions
	// get a " (n)" suffix.
	PNGBaseName   = "meme"
	VideoBaseName = "meme"

	// StillClipSeconds is the length of a video exported from a composition
	// without an attached video.
	StillClipSeconds = 3

	// MaxVideoFrames caps how many frames the clip pipeline will materialize
	// on disk. Clips needing more are rejected up front, never truncated.
	MaxVideoFrames = 1800
)

// Request is a snapshot of everything one export needs. The composition is
// not shared with the UI after submission; callers pass a copy.
type Request struct {
	Composition *model.Composition
	Media       image.Image // decoded still, nil for text-only compositions
	Metrics     model.RenderMetrics
}

// Service handles export operations
type Service struct {
	tasks      map[string]*model.ExportTask
	tasksMutex sync.RWMutex
	composer   *compose.Composer
	exportDir  string
	videoFPS   int
	onUpdate   func(*model.ExportTask) // callback for UI updates
}

// NewService creates a new export service
func NewService(composer *compose.Composer, exportDir string, videoFPS int) *Service {
	return &Service{
		tasks:     make(map[string]*model.ExportTask),
		composer:  composer,
		exportDir: exportDir,
		videoFPS:  videoFPS,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ExportTask)) {
	s.onUpdate = callback
}

// SetExportDirectory sets the directory finished files land in
func (s *Service) SetExportDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.exportDir = dir
}

// SetVideoFPS sets the frame rate used for video export
func (s *Service) SetVideoFPS(fps int) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.videoFPS = fps
}

// ExportPNG starts a PNG export of the composition
func (s *Service) ExportPNG(req Request) (*model.ExportTask, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	task := s.addTask(model.FormatPNG)
	go s.runPNG(task, req)
	return task, nil
}

// ExportVideo starts a video export. With an attached video the clip is
// re-composited frame by frame into a WEBM; without one a short clip of the
// still composition is produced. Clip export needs ffmpeg; the still path
// falls back to an MJPEG AVI when ffmpeg is missing.
func (s *Service) ExportVideo(req Request) (*model.ExportTask, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Composition.Media != nil && req.Composition.Media.IsVideo() {
		frames, err := ClipFrameBudget(req.Composition.Media.Duration, s.fps())
		if err != nil {
			return nil, err
		}
		if !platform.HasFFmpeg() {
			return nil, fmt.Errorf("video export requires ffmpeg on PATH")
		}

		task := s.addTask(model.FormatWebM)
		go s.runClip(task, req, frames)
		return task, nil
	}

	format := model.FormatWebM
	if !platform.HasFFmpeg() {
		format = model.FormatAVI
	}

	task := s.addTask(format)
	go s.runStillClip(task, req)
	return task, nil
}

// Stop requests cancellation of a running export task
func (s *Service) Stop(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("export task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("export task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns an export task by ID
func (s *Service) GetTask(taskID string) (*model.ExportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// GetAllTasks returns all export tasks
func (s *Service) GetAllTasks() []*model.ExportTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ExportTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// addTask registers a new pending task
func (s *Service) addTask(format model.ExportFormat) *model.ExportTask {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task := &model.ExportTask{
		ID:        generateTaskID(),
		Format:    format,
		Status:    model.TaskStatusPending,
		Progress:  0.0,
		Percent:   0,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	return task
}

// status returns the task's current status under the read lock
func (s *Service) status(task *model.ExportTask) model.TaskStatus {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return task.Status
}

// setStatus transitions the task and notifies the UI
func (s *Service) setStatus(task *model.ExportTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setProgress updates task progress and notifies the UI
func (s *Service) setProgress(task *model.ExportTask, progress float64) {
	if progress > 1.0 {
		progress = 1.0
	}
	s.tasksMutex.Lock()
	task.Progress = progress
	task.Percent = int(progress * 100)
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setTaskStopped marks a task stopped by the user
func (s *Service) setTaskStopped(task *model.ExportTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStopped
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.ExportTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setTaskCompleted marks a task finished with its output path
func (s *Service) setTaskCompleted(task *model.ExportTask, outputPath string) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.OutputPath = outputPath
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ExportTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// validateRequest rejects requests that cannot produce a meaningful file
func validateRequest(req Request) error {
	if req.Composition == nil {
		return fmt.Errorf("nothing to export: empty composition")
	}
	c := req.Composition
	if c.TopText == "" && c.BottomText == "" && c.Watermark == "" && c.Media == nil {
		return fmt.Errorf("nothing to export: no captions and no media")
	}
	if req.Metrics.Width <= 0 || req.Metrics.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", req.Metrics.Width, req.Metrics.Height)
	}
	return nil
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
