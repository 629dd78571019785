package downloadmgr

import (
	"context"
	"sync"
)

// MaxJobs is the hard cap of in-flight jobs per batch
const MaxJobs = 64

// Job is one unit of work for Run (usually a single download)
type Job func(ctx context.Context) error

// Run executes all jobs with at most limit (MaxJobs if limit <= 0)
// running at once. Every job runs to completion even if a sibling
// fails. The first error encountered is returned once the whole
// batch has drained.
func Run(ctx context.Context, jobs []Job, limit int) error {
	if limit <= 0 {
		limit = MaxJobs
	}

	sem := make(chan struct{}, limit)
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job Job) {
			defer wg.Done()
			errs[i] = job(ctx)
			<-sem
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
