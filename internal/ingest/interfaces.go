package ingest

import (
	"github.com/memeforge/memeforge/internal/model"
)

// Ingester defines the interface for the media attachment service.
type Ingester interface {
	// SetUpdateCallback sets the callback invoked when the attachment slot
	// changes or an ingest attempt fails.
	SetUpdateCallback(func(*model.MediaAttachment, error))

	// Attach ingests the file at path asynchronously. A later Attach or
	// Clear supersedes any in-flight ingest.
	Attach(path string)

	// Current returns the live attachment, or nil.
	Current() *model.MediaAttachment

	// Clear releases the live attachment and empties the slot.
	Clear()

	// Close clears the slot and removes the service's temp directory.
	Close()
}
