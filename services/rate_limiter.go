package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// GenerationLimiter caps expensive AI generations per user. With a
// redis client it uses a counter keyed per window so the limit holds
// across replicas; otherwise it keeps an in-process sliding window.
type GenerationLimiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int

	mu       sync.Mutex
	requests map[uint][]time.Time
}

func NewGenerationLimiter(rdb *redis.Client, window time.Duration, limit int) *GenerationLimiter {
	return &GenerationLimiter{
		rdb:      rdb,
		window:   window,
		limit:    limit,
		requests: make(map[uint][]time.Time),
	}
}

func (l *GenerationLimiter) Allow(userID uint) bool {
	if l.rdb != nil {
		return l.allowRedis(userID)
	}
	return l.allowLocal(userID)
}

// allowRedis keeps a per-user ZSET of request timestamps so the
// sliding window holds across replicas.
func (l *GenerationLimiter) allowRedis(userID uint) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := time.Now()
	key := fmt.Sprintf("menugen:%d", userID)
	cutoff := strconv.FormatInt(now.Add(-l.window).UnixNano(), 10)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		// fail open: a redis outage must not block menu generation
		log.WithError(err).Warn("rate limiter redis unavailable")
		return true
	}
	if count.Val() >= int64(l.limit) {
		return false
	}

	if err := l.rdb.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	}).Err(); err != nil {
		log.WithError(err).Warn("rate limiter redis unavailable")
		return true
	}
	l.rdb.Expire(ctx, key, l.window)
	return true
}

func (l *GenerationLimiter) allowLocal(userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.window)

	var valid []time.Time
	for _, t := range l.requests[userID] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) < l.limit {
		valid = append(valid, now)
		l.requests[userID] = valid
		return true
	}

	l.requests[userID] = valid
	return false
}
