package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-key/internal/logger"
)

// DefaultReloadInterval is used when Start gets a non-positive interval.
const DefaultReloadInterval = time.Minute

type reloadJob struct {
	reloader Reloader
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReloadJob returns a job that calls reloader.Reload on a ticker. The
// job is idle until Start is called.
func NewReloadJob(reloader Reloader, log *logger.Logger) ReloadJob {
	return &reloadJob{reloader: reloader, logger: log}
}

// Start stops any running loop, then reloads every interval until ctx is
// cancelled or Stop is called. Reload errors are logged and the loop
// carries on with the copy it has.
func (j *reloadJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.reloader.Reload(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Warn().Err(err).Msg("vault reload failed")
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. It is a no-op when the
// job is not running.
func (j *reloadJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
