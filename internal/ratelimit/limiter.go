package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles request weight per bucket. Each bucket refills
// requests units of weight per period and holds at most requests units.
type RateLimiter struct {
	buckets  sync.Map
	mu       sync.RWMutex
	requests int
	period   time.Duration
	counters counters
}

type counters struct {
	checks  atomic.Int64
	allowed atomic.Int64
	denied  atomic.Int64
	weight  atomic.Int64
	buckets atomic.Int32
}

// New creates a RateLimiter whose buckets allow the given weight per period.
func New(requests int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: requests,
		period:   period,
	}
}

// Wait blocks until the named bucket has weight units available or the
// context is done. Buckets are created on demand with the default limit.
func (r *RateLimiter) Wait(ctx context.Context, bucket string, weight int) error {
	r.counters.checks.Add(1)
	limiter := r.bucket(bucket)
	if weight > limiter.Burst() {
		r.counters.denied.Add(1)
		return fmt.Errorf("request weight %d exceeds %s bucket capacity %d", weight, bucket, limiter.Burst())
	}
	if err := limiter.WaitN(ctx, weight); err != nil {
		r.counters.denied.Add(1)
		return err
	}
	r.record(weight)
	return nil
}

// Allow reports whether the named bucket has weight units available now,
// consuming them if so.
func (r *RateLimiter) Allow(bucket string, weight int) bool {
	r.counters.checks.Add(1)
	if !r.bucket(bucket).AllowN(time.Now(), weight) {
		r.counters.denied.Add(1)
		return false
	}
	r.record(weight)
	return true
}

func (r *RateLimiter) record(weight int) {
	r.counters.allowed.Add(1)
	r.counters.weight.Add(int64(weight))
}

func (r *RateLimiter) bucket(name string) *rate.Limiter {
	if v, ok := r.buckets.Load(name); ok {
		return v.(*rate.Limiter)
	}

	r.mu.RLock()
	limiter := newLimiter(r.requests, r.period)
	r.mu.RUnlock()

	actual, loaded := r.buckets.LoadOrStore(name, limiter)
	if !loaded {
		r.counters.buckets.Add(1)
	}
	return actual.(*rate.Limiter)
}

// SetLimit changes the default limit for buckets created from now on.
func (r *RateLimiter) SetLimit(requests int, period time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = requests
	r.period = period
}

// SetBucketLimit resizes one bucket, creating it if needed.
func (r *RateLimiter) SetBucketLimit(bucket string, requests int, period time.Duration) {
	limiter := r.bucket(bucket)
	limiter.SetLimit(perSecond(requests, period))
	limiter.SetBurst(requests)
}

func newLimiter(requests int, period time.Duration) *rate.Limiter {
	return rate.NewLimiter(perSecond(requests, period), requests)
}

func perSecond(requests int, period time.Duration) rate.Limit {
	return rate.Limit(float64(requests) / period.Seconds())
}

// Stats is a point-in-time copy of the limiter counters.
type Stats struct {
	// Checks counts Wait and Allow calls.
	Checks  int64
	Allowed int64
	Denied  int64
	// Weight is the total weight granted.
	Weight  int64
	Buckets int32
}

// Stats returns the current counters.
func (r *RateLimiter) Stats() Stats {
	return Stats{
		Checks:  r.counters.checks.Load(),
		Allowed: r.counters.allowed.Load(),
		Denied:  r.counters.denied.Load(),
		Weight:  r.counters.weight.Load(),
		Buckets: r.counters.buckets.Load(),
	}
}
