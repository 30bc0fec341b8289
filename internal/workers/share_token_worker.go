// Package workers provides background job processors for the wishlist service.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"wishlist-service/internal/repository"
)

// DefaultTokenSweepInterval is the default interval between share-token
// expiry sweeps.
const DefaultTokenSweepInterval = 1 * time.Hour

// ShareTokenWorker periodically nulls out expired share tokens so stale
// links stop resolving at the database layer, not just at read time.
type ShareTokenWorker struct {
	wishlists repository.WishlistRepositoryInterface
	interval  time.Duration
	logger    *logrus.Entry

	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.Mutex
	running  bool
	lastRun  time.Time
}

// NewShareTokenWorker creates a new share token cleanup worker.
func NewShareTokenWorker(wishlists repository.WishlistRepositoryInterface, interval time.Duration, logger *logrus.Logger) *ShareTokenWorker {
	if interval == 0 {
		interval = DefaultTokenSweepInterval
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ShareTokenWorker{
		wishlists: wishlists,
		interval:  interval,
		logger:    logger.WithField("component", "share-token-worker"),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (w *ShareTokenWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
	w.logger.WithField("interval", w.interval.String()).Info("Share token worker started")
}

// Stop stops the sweep loop and waits for the current pass to finish.
func (w *ShareTokenWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	<-w.doneChan
	w.logger.Info("Share token worker stopped")
}

func (w *ShareTokenWorker) run() {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stopChan:
			return
		}
	}
}

func (w *ShareTokenWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := w.wishlists.ClearExpiredShareTokens(ctx, time.Now())
	w.mu.Lock()
	w.lastRun = time.Now()
	w.mu.Unlock()

	if err != nil {
		w.logger.WithError(err).Error("Share token sweep failed")
		return
	}
	if cleared > 0 {
		w.logger.WithField("cleared", cleared).Info("Expired share tokens cleared")
	}
}
