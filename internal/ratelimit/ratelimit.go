// Package ratelimit implements a fixed-window request limiter keyed by an
// arbitrary caller identity (typically the originating address).
//
// The window never slides: the first request for a key opens a window of the
// caller-supplied length, every request inside it counts against the budget,
// and the counter resets only when the window has fully elapsed. Limit and
// window length are supplied per call site, so different endpoints can carry
// different policies without any shared global default.
//
// The counter map is in-process state: with several server processes behind a
// load balancer each process enforces its own independent budget. Swapping
// the map for a shared counter store behind the same Check contract is the
// intended scaling path.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Result carries the window accounting exposed to the HTTP layer for
// response headers on every checked request, allowed or not.
type Result struct {
	// Limit is the request budget of the current window.
	Limit int

	// Remaining is how many requests are left in the current window,
	// never negative.
	Remaining int

	// ResetAt is when the current window rolls over.
	ResetAt time.Time
}

// LimitExceededError signals that a key has exhausted its window budget.
// It is expected control flow, not a fault: the transport layer maps it to a
// 429-class response using RetryAfterSeconds.
type LimitExceededError struct {
	Result

	// RetryAfterSeconds is the whole number of seconds until the window
	// rolls over, rounded up, always at least 1 inside a live window.
	RetryAfterSeconds int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("rate limit of %d exceeded, retry after %ds", e.Limit, e.RetryAfterSeconds)
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a concurrency-safe fixed-window limiter over an in-process
// key → window map. The zero value is not usable; construct with New.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is injectable for tests.
	now func() time.Time
}

// New constructs an empty limiter using the wall clock.
func New() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check records one request for key against a budget of limit requests per
// windowLen and returns the window accounting.
//
// If no window exists for the key, or the previous window has elapsed, a
// fresh window is started with this request as its first. When the request
// pushes the count past limit, Check returns a *[LimitExceededError] whose
// Result still carries the header values; the request itself is never
// enqueued or delayed — rejecting is the caller's job.
func (l *Limiter) Check(key string, limit int, windowLen time.Duration) (Result, error) {
	now := l.now()

	l.mu.Lock()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{count: 0, resetAt: now.Add(windowLen)}
		l.windows[key] = w
	}
	w.count++
	count := w.count
	resetAt := w.resetAt
	l.mu.Unlock()

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	res := Result{Limit: limit, Remaining: remaining, ResetAt: resetAt}

	if count > limit {
		return res, &LimitExceededError{Result: res, RetryAfterSeconds: ceilSeconds(resetAt.Sub(now))}
	}

	return res, nil
}

// Sweep drops every window whose reset time has passed. Expired windows are
// semantically dead either way; sweeping just bounds memory for keys that
// never return.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
	l.mu.Unlock()
}

// SweepEvery runs Sweep on a ticker until stop is closed. Intended to be
// launched as a background worker.
func (l *Limiter) SweepEvery(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
