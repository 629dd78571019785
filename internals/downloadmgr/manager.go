// Package downloadmgr downloads batches of files with bounded
// concurrency. It is used by every bulk operation in this launcher:
// asset objects, libraries and java runtime files.
package downloadmgr

import (
	"context"
	"net/http"
	"sync"
)

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue  []Downloader
	Client *http.Client
	// OnProgress is called with (done, total) after every finished
	// item, including ones that were skipped
	OnProgress func(done int, total int)

	mu   sync.Mutex
	done int
}

// Downloader allows the DownloadManager to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// New creates a new DownloadManager
func New() *DownloadManager {
	return &DownloadManager{}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start starts the download queue and blocks until every item has
// finished. The first error is returned after the batch drained.
func (d *DownloadManager) Start(ctx context.Context) error {
	if d.queue == nil {
		return nil
	}

	total := len(d.queue)
	jobs := make([]Job, 0, total)
	for _, item := range d.queue {
		item := item
		jobs = append(jobs, func(ctx context.Context) error {
			err := item.Download(ctx)
			d.step(total)
			return err
		})
	}

	return Run(ctx, jobs, MaxJobs)
}

func (d *DownloadManager) step(total int) {
	d.mu.Lock()
	d.done++
	done := d.done
	d.mu.Unlock()
	if d.OnProgress != nil {
		d.OnProgress(done, total)
	}
}
