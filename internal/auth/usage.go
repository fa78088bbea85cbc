package auth

import (
	"context"
	"sync"
	"time"
)

const (
	// UsageCleanupInterval is how often old request timestamps are dropped
	UsageCleanupInterval = 30 * time.Second

	// UsageRetentionPeriod is the RPM window
	UsageRetentionPeriod = 60 * time.Second
)

// UsageTracker counts webhook requests per client in memory for rate limiting
type UsageTracker struct {
	mu       sync.Mutex
	requests map[string][]time.Time

	now    func() time.Time
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewUsageTracker creates a new usage tracker. A nil now defaults to time.Now.
func NewUsageTracker(now func() time.Time) *UsageTracker {
	if now == nil {
		now = time.Now
	}
	return &UsageTracker{
		requests: make(map[string][]time.Time),
		now:      now,
		stopCh:   make(chan struct{}),
	}
}

// RecordRequest records a request of client
func (t *UsageTracker) RecordRequest(client string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests[client] = append(t.requests[client], t.now())
}

// GetRPM returns the requests of client within the last minute
func (t *UsageTracker) GetRPM(client string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-UsageRetentionPeriod)
	count := 0
	for _, ts := range t.requests[client] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}

// Cleanup drops timestamps outside the window and forgets idle clients
func (t *UsageTracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-UsageRetentionPeriod)
	for client, stamps := range t.requests {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(t.requests, client)
			continue
		}
		t.requests[client] = kept
	}
}

// Clients returns how many clients are tracked
func (t *UsageTracker) Clients() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Start begins the background cleanup goroutine
func (t *UsageTracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.cleanupTicker(ctx)
	}()
}

// Stop gracefully stops the usage tracker
func (t *UsageTracker) Stop() {
	close(t.stopCh)
	t.wg.Wait()
}

func (t *UsageTracker) cleanupTicker(ctx context.Context) {
	ticker := time.NewTicker(UsageCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.Cleanup()
		}
	}
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
