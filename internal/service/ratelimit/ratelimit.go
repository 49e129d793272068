package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"go.uber.org/zap"
)

//go:generate mockgen -source=ratelimit.go -destination=mock_ratelimit.go -package=ratelimit

// Store admits an event atomically: prune entries older than window, count
// the rest, record now only when the count is below limit.
type Store interface {
	Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error)
}

type Limiter struct {
	store  Store
	limits map[string]config.RateLimit
	now    func() time.Time
}

func New(store Store, limits map[string]config.RateLimit) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

// Allow reports whether the user may perform action now. Actions without a
// configured limit are always allowed.
func (l *Limiter) Allow(ctx context.Context, userID int64, action string) (bool, error) {
	rl, ok := l.limits[action]
	if !ok {
		return true, nil
	}
	admitted, err := l.store.Admit(ctx, Key(userID, action), rl.Limit, rl.Window, l.now())
	if err != nil {
		zap.L().Error("rate limit store failed", zap.String("action", action), zap.Error(err))
		return false, err
	}
	if !admitted {
		zap.L().Info("rate limited", zap.Int64("user_id", userID), zap.String("action", action))
	}
	return admitted, nil
}

// Window returns the configured window for action, for retry-after messages.
func (l *Limiter) Window(action string) time.Duration {
	return l.limits[action].Window
}

func Key(userID int64, action string) string {
	return strconv.FormatInt(userID, 10) + ":" + action
}

// MemoryStore keeps event logs in process.
type MemoryStore struct {
	mu   sync.Mutex
	logs map[string]*eventLog
}

type eventLog struct {
	window time.Duration
	events []time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logs: make(map[string]*eventLog)}
}

func (s *MemoryStore) Admit(_ context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[key]
	if !ok {
		log = &eventLog{}
	}
	log.window = window
	log.prune(now)
	if len(log.events) >= limit {
		if len(log.events) == 0 {
			delete(s.logs, key)
		}
		return false, nil
	}
	log.events = append(log.events, now)
	s.logs[key] = log
	return true, nil
}

// Sweep drops logs with no events inside their window and returns how many
// were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, log := range s.logs {
		log.prune(now)
		if len(log.events) == 0 {
			delete(s.logs, key)
			removed++
		}
	}
	return removed
}

func (l *eventLog) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.events[:0]
	for _, at := range l.events {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	l.events = kept
}
