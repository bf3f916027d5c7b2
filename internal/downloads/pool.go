package downloads

import (
	"context"
	"sync"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"

	"golang.org/x/time/rate"
)

// RunParallel fans the downloads out over a bounded pool of workers. Each
// task is independently wrapped by its retry policy; one task exhausting
// its retries never cancels the others. Results come back in original task
// order, exactly one per task.
//
// Launches are paced through the limiter so a large worker count does not
// stampede the remote host with simultaneous yt-dlp spawns. A cancelled
// context stops new submissions and kills in-flight child processes;
// unstarted tasks report failed with the context error.
func RunParallel(ctx context.Context, dls []*VideoDownload, workers int, limiter *rate.Limiter) []Result {
	if workers < consts.MinWorkers {
		workers = consts.MinWorkers
	}
	if workers > consts.MaxWorkers {
		workers = consts.MaxWorkers
	}

	results := make([]Result, len(dls))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, d := range dls {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Video: d.Video, Status: models.DLStatusFailed, Err: err}
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				results[i] = Result{Video: d.Video, Status: models.DLStatusFailed, Err: err}
				continue
			}
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, d *VideoDownload) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.Run(ctx)
		}(i, d)
	}

	wg.Wait()
	logging.D(2, "Worker pool finished %d tasks", len(dls))
	return results
}
