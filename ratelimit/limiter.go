// Package ratelimit bounds how often a single identity may go through
// the pipeline: a sliding-window quota over the trailing hour plus a
// minimum-interval cooldown between two accepted requests.
package ratelimit

import (
	"sync"
	"time"
)

const (
	ReasonQuota    = "hourly quota exceeded"
	ReasonCooldown = "cooldown active"
)

// Decision is the outcome of a TryAcquire call. RetryAfter is only
// meaningful when Allowed is false.
type Decision struct {
	Allowed    bool
	Reason     string
	RetryAfter time.Duration
}

// record tracks one identity. Timestamps are kept ascending and never
// older than the window relative to the last trim.
type record struct {
	stamps       []time.Time
	lastAccepted time.Time
}

type ILimiter interface {
	TryAcquire(userID int64) Decision
	PruneIdle() int
}

type Limiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	cooldown time.Duration
	now      func() time.Time
	records  map[int64]*record
}

// NewLimiter builds a limiter allowing at most limit requests per
// window, with at least cooldown between two accepted requests.
// A zero or negative limit disables the quota, a zero or negative
// cooldown disables the cooldown.
func NewLimiter(limit int, window, cooldown time.Duration) *Limiter {
	return NewLimiterWithClock(limit, window, cooldown, time.Now)
}

// NewLimiterWithClock injects the clock so tests can compress time.
func NewLimiterWithClock(limit int, window, cooldown time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		limit:    limit,
		window:   window,
		cooldown: cooldown,
		now:      now,
		records:  make(map[int64]*record),
	}
}

// TryAcquire runs the read-trim-check-append sequence for one identity.
// The whole sequence executes under the lock: two concurrent messages
// from the same user must not both pass when only one slot remains.
func (l *Limiter) TryAcquire(userID int64) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[userID]
	if !ok {
		rec = &record{}
		l.records[userID] = rec
	}

	l.trim(rec, now)

	if l.limit > 0 && len(rec.stamps) >= l.limit {
		oldest := rec.stamps[0]
		return Decision{
			Reason:     ReasonQuota,
			RetryAfter: l.window - now.Sub(oldest),
		}
	}

	if l.cooldown > 0 && !rec.lastAccepted.IsZero() {
		if elapsed := now.Sub(rec.lastAccepted); elapsed < l.cooldown {
			return Decision{
				Reason:     ReasonCooldown,
				RetryAfter: l.cooldown - elapsed,
			}
		}
	}

	rec.stamps = append(rec.stamps, now)
	rec.lastAccepted = now
	return Decision{Allowed: true}
}

// PruneIdle drops records with no activity inside the window, bounding
// the map size. Returns the number of records removed.
func (l *Limiter) PruneIdle() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for userID, rec := range l.records {
		l.trim(rec, now)
		if len(rec.stamps) == 0 && now.Sub(rec.lastAccepted) > l.window {
			delete(l.records, userID)
			removed++
		}
	}
	return removed
}

// Tracked reports how many identities currently hold a record.
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// trim discards timestamps older than the window. Stamps are appended in
// clock order, so the first still-fresh entry ends the scan.
func (l *Limiter) trim(rec *record, now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(rec.stamps) && !rec.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		rec.stamps = append(rec.stamps[:0], rec.stamps[i:]...)
	}
}
