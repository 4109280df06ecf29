// AngelaMos | 2026
// counter.go

package nudge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a per-user, per-day nudge counter. Day keys are calendar dates
// in the user's reference timezone; the reset at a day boundary is implicit
// in the key, not a scheduled job.
type Store interface {
	Incr(ctx context.Context, userID, day string) (int, error)
	Count(ctx context.Context, userID, day string) (int, error)
}

// DayKey formats the calendar day for a moment in the user's reference
// timezone. All day-boundary logic hangs off this one function.
func DayKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}

// RedisStore is the authoritative counter, shared across devices.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func counterKey(userID, day string) string {
	return fmt.Sprintf("nudge:%s:%s", userID, day)
}

func (s *RedisStore) Incr(ctx context.Context, userID, day string) (int, error) {
	key := counterKey(userID, day)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment nudge counter: %w", err)
	}

	return int(incr.Val()), nil
}

func (s *RedisStore) Count(ctx context.Context, userID, day string) (int, error) {
	count, err := s.client.Get(ctx, counterKey(userID, day)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read nudge counter: %w", err)
	}

	return count, nil
}

// LocalStore is the single-device approximation used when Redis is
// unreachable. It applies the same day-key rule but cannot see usage from
// other devices; that consistency relaxation is accepted, not reconciled.
type LocalStore struct {
	mu       sync.Mutex
	counters map[string]*localCounter
}

type localCounter struct {
	day   string
	count int
}

func NewLocalStore() *LocalStore {
	return &LocalStore{counters: make(map[string]*localCounter)}
}

func (s *LocalStore) Incr(_ context.Context, userID, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counter(userID, day)
	c.count++
	return c.count, nil
}

func (s *LocalStore) Count(_ context.Context, userID, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counter(userID, day).count, nil
}

// counter resets lazily at read time whenever the stored day differs from
// the requested one.
func (s *LocalStore) counter(userID, day string) *localCounter {
	c, ok := s.counters[userID]
	if !ok || c.day != day {
		c = &localCounter{day: day}
		s.counters[userID] = c
	}
	return c
}
