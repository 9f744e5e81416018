package workers

import (
	"chat-relay/ratelimit"
	"context"
	"log/slog"
	"time"
)

// JanitorWorker periodically prunes rate records with no activity in
// the trailing window. Without it the record map only shrinks when an
// idle identity sends again.
type JanitorWorker struct {
	log      *slog.Logger
	limiter  ratelimit.ILimiter
	interval time.Duration
}

func NewJanitorWorker(log *slog.Logger, limiter ratelimit.ILimiter, interval time.Duration) *JanitorWorker {
	return &JanitorWorker{log: log, limiter: limiter, interval: interval}
}

func (w *JanitorWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping janitor")
			return nil
		case <-ticker.C:
			if removed := w.limiter.PruneIdle(); removed > 0 {
				w.log.Debug("Pruned idle rate records", "removed", removed)
			}
		}
	}
}
