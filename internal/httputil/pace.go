// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between consecutive operations. The
// pipeline uses it to pace page fetches, per-section queries, and
// section transitions so external services see a steady request rate.
//
// A Gate with a zero or negative interval never blocks. The zero value
// is ready to use as a no-op gate.
type Gate struct {
	// Interval is the minimum spacing between passes.
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewGate returns a Gate with the given minimum interval.
func NewGate(interval time.Duration) *Gate {
	return &Gate{Interval: interval}
}

// Wait blocks until at least Interval has elapsed since the previous
// pass, then records the current time. The first call never blocks.
// If ctx is cancelled during the wait, Wait returns ctx.Err() without
// recording a pass.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil || g.Interval <= 0 {
		return nil
	}

	g.mu.Lock()
	now := time.Now()
	var sleep time.Duration
	if !g.last.IsZero() {
		if elapsed := now.Sub(g.last); elapsed < g.Interval {
			sleep = g.Interval - elapsed
		}
	}
	if sleep <= 0 {
		g.last = now
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		g.mu.Lock()
		g.last = time.Now()
		g.mu.Unlock()
		return nil
	}
}
