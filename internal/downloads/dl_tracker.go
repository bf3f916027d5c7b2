package downloads

import (
	"context"
	"time"

	"playlistfy/internal/contracts"
	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"
)

// Tracker consumes live status updates from download operations,
// de-duplicates them and flushes them to the archive store and the UI
// callback.
type Tracker struct {
	updates  chan models.StatusUpdate
	done     chan struct{}
	store    contracts.DownloadStore
	onUpdate func(models.StatusUpdate)
}

// NewTracker returns the model used for tracking downloads. Both store and
// onUpdate may be nil.
func NewTracker(store contracts.DownloadStore, onUpdate func(models.StatusUpdate)) *Tracker {
	return &Tracker{
		updates:  make(chan models.StatusUpdate, 100),
		done:     make(chan struct{}),
		store:    store,
		onUpdate: onUpdate,
	}
}

// Start starts download tracking.
func (t *Tracker) Start(ctx context.Context) {
	go t.processUpdates(ctx)
}

// Stop stops download tracking.
func (t *Tracker) Stop() {
	close(t.done)
}

// sendUpdate constructs the update and sends it into the processing channel.
func (t *Tracker) sendUpdate(v *models.Video) {
	if v == nil || v.URL == "" {
		logging.E("Invalid video struct before status update: %+v", v)
		return
	}

	update := models.StatusUpdate{
		VideoID:  v.ID,
		VideoURL: v.URL,
		Status:   v.DownloadStatus.Status,
		Percent:  v.DownloadStatus.Pct,
		Error:    v.DownloadStatus.Error,
	}

	select {
	case t.updates <- update:
	case <-t.done:
	}
}

// processUpdates processes download status updates.
func (t *Tracker) processUpdates(ctx context.Context) {
	var last models.StatusUpdate
	for {
		select {
		case <-t.done:
			return

		case update := <-t.updates:
			if sameUpdate(update, last) {
				continue
			}
			last = update

			logging.D(3, "Status update for %q: %s %.1f%%", update.VideoURL, update.Status, update.Percent)

			if t.onUpdate != nil {
				t.onUpdate(update)
			}
			t.flushUpdate(ctx, update)
		}
	}
}

func sameUpdate(a, b models.StatusUpdate) bool {
	return a.VideoURL == b.VideoURL && a.Status == b.Status && a.Percent == b.Percent
}

// flushUpdate writes one status update to the store, retrying transient
// failures a few times before giving up.
func (t *Tracker) flushUpdate(ctx context.Context, update models.StatusUpdate) {
	if t.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := t.store.UpdateDownloadStatus(ctx, update); err != nil {
			if attempt == maxRetries-1 {
				logging.E("Failed to persist status update after %d attempts: %v", maxRetries, err)
				return
			}
			time.Sleep(consts.Interval100ms * time.Duration(attempt+1))
			continue
		}
		return
	}
}
