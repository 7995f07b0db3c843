package export

import (
	"github.com/memeforge/memeforge/internal/model"
)

// Exporter defines the interface for the export service.
type Exporter interface {
	SetUpdateCallback(func(*model.ExportTask))
	ExportPNG(req Request) (*model.ExportTask, error)
	ExportVideo(req Request) (*model.ExportTask, error)
	Stop(taskID string) error
	GetTask(taskID string) (*model.ExportTask, bool)
	GetAllTasks() []*model.ExportTask

	// SetExportDirectory sets the directory finished files land in
	SetExportDirectory(dir string)

	// SetVideoFPS sets the frame rate used for video export
	SetVideoFPS(fps int)
}
