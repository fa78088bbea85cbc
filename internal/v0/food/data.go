package food

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mensa/internal/cache"
	"mensa/internal/dates"
	"mensa/internal/obs"
	"mensa/internal/openmensa"
)

// MealSource is the upstream the repository falls back to on a cache miss
type MealSource interface {
	Meals(ctx context.Context, canteenID int, date time.Time) ([]openmensa.Meal, error)
}

// Repository serves a canteen's daily meal listing from the cache and fills it from the upstream.
// Concurrent misses of the same key are not merged, each one calls the upstream.
type Repository struct {
	cache  cache.Cache[[]openmensa.Meal]
	source MealSource
	ttl    time.Duration

	now     func() time.Time
	logger  *slog.Logger
	metrics *obs.Metrics
}

// NewRepository creates a new meal repository. A zero ttl falls back to cache.DefaultExpiredDuration.
func NewRepository(
	c cache.Cache[[]openmensa.Meal],
	source MealSource,
	ttl time.Duration,
	now func() time.Time,
	logger *slog.Logger,
	metrics *obs.Metrics,
) *Repository {
	if ttl <= 0 {
		ttl = cache.DefaultExpiredDuration
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		cache:   c,
		source:  source,
		ttl:     ttl,
		now:     now,
		logger:  logger,
		metrics: metrics,
	}
}

// CacheKey identifies one day's listing of one canteen
func CacheKey(canteenID int, date time.Time) string {
	return fmt.Sprintf("%d-%s", canteenID, dates.Format(date))
}

// GetMeals returns the listing of canteenID on date.
// A failed upstream call is returned as is and leaves the cache untouched.
func (r *Repository) GetMeals(ctx context.Context, canteenID int, date time.Time) ([]openmensa.Meal, error) {
	key := CacheKey(canteenID, date)

	meals, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		r.logger.DebugContext(ctx, "meals cache hit", "key", key)
		r.metrics.ObserveCache(obs.CacheHit)
		return meals, nil
	case cache.IsMiss(err):
		r.logger.DebugContext(ctx, "meals cache miss", "key", key, "reason", err.Error())
		if errors.Is(err, cache.ErrExpired) {
			r.metrics.ObserveCache(obs.CacheExpired)
		} else {
			r.metrics.ObserveCache(obs.CacheMiss)
		}
	default:
		r.logger.WarnContext(ctx, "meals cache lookup failed, fetching", "key", key, "error", err)
		r.metrics.ObserveCache(obs.CacheError)
	}

	meals, err = r.source.Meals(ctx, canteenID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch meals for %s: %w", key, err)
	}

	if err := r.cache.Set(ctx, key, meals, r.now().Add(r.ttl)); err != nil {
		r.logger.WarnContext(ctx, "failed to cache meals", "key", key, "error", err)
		r.metrics.RecordCacheStoreFail()
	}

	return meals, nil
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
