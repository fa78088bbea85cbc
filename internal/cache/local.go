package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Local is an in-process Cache guarded by a RWMutex.
// Expired items are never served; they are dropped on the next Sweep.
type Local[V any] struct {
	items map[string]Item[V]
	lock  sync.RWMutex

	now func() time.Time
}

var _ Cache[int] = (*Local[int])(nil)

// NewLocal creates an empty cache. A nil now defaults to time.Now.
func NewLocal[V any](now func() time.Time) *Local[V] {
	if now == nil {
		now = time.Now
	}
	return &Local[V]{
		items: make(map[string]Item[V]),
		now:   now,
	}
}

func (l *Local[V]) Get(_ context.Context, key string) (V, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	var zero V
	item, found := l.items[key]
	if !found {
		return zero, ErrNotFound
	}
	if !l.now().Before(item.Expiration) {
		return zero, ErrExpired
	}
	return item.Value, nil
}

func (l *Local[V]) Set(_ context.Context, key string, value V, expiration time.Time) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.items[key] = Item[V]{Value: value, Expiration: expiration}
	return nil
}

// Len counts stored items, including expired ones not swept yet
func (l *Local[V]) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return len(l.items)
}

// Sweep removes expired items and returns how many were dropped
func (l *Local[V]) Sweep() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	now := l.now()
	removed := 0
	for key, item := range l.items {
		if !now.Before(item.Expiration) {
			delete(l.items, key)
			removed++
		}
	}
	return removed
}

// Start runs Sweep every interval until ctx is done
func (l *Local[V]) Start(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultExpiredTaskTimer
	}
	if logger == nil {
		logger = slog.Default()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("cache sweeper stopped")
				return
			case <-ticker.C:
				if n := l.Sweep(); n > 0 {
					logger.Debug("swept expired cache items", "count", n)
				}
			}
		}
	}()
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
