package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// DefaultExpiredDuration is how long an item stays valid when no TTL is configured
	DefaultExpiredDuration = 24 * time.Hour

	// DefaultExpiredTaskTimer is the default interval of the expired item sweeper
	DefaultExpiredTaskTimer = 10 * time.Minute
)

var (
	ErrNotFound = errors.New("cache item not found")
	ErrExpired  = errors.New("cache item expired")
)

// Item is a cached value with the instant it stops being served
type Item[V any] struct {
	Value      V
	Expiration time.Time
}

// Cache stores values until their expiration.
// Get returns ErrNotFound for unknown keys and ErrExpired for keys whose expiration has passed,
// callers must treat both as a miss.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, expiration time.Time) error
	Len() int
}

// IsMiss reports whether err means the key has to be fetched again
func IsMiss(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
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
