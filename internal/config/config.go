package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata"

	"mensa/internal/cache"
	"mensa/internal/env"
	"mensa/internal/openmensa"
)

const (
	DefaultPort       = 8000
	DefaultCanteenID  = 31
	DefaultTimezone   = "Europe/Berlin"
	DefaultIntentName = "GetFood_Intent"
)

type Config struct {
	Port      int
	GinMode   string
	Debug     bool
	LogLevel  string
	LogFormat string

	CanteenID       int
	OpenMensaBase   string
	UpstreamTimeout time.Duration // 0 keeps the transport default
	Timezone        string
	IntentName      string

	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	WebhookTokenHashes []string
	AllowedIPs         []string
	RateLimitRPM       int // 0 disables the limit

	location *time.Location
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:      env.GetInt(env.EnvPort, DefaultPort),
		GinMode:   env.GetEnv(env.EnvGinMode, "release"),
		Debug:     env.GetBool(env.EnvDebug, false),
		LogLevel:  env.GetEnv(env.EnvLogLevel, "info"),
		LogFormat: env.GetEnv(env.EnvLogFormat, "text"),

		CanteenID:       env.GetInt(env.EnvCanteenID, DefaultCanteenID),
		OpenMensaBase:   env.GetEnv(env.EnvOpenMensaBase, openmensa.DefaultBaseURL),
		UpstreamTimeout: env.GetDuration(env.EnvUpstreamTimeout, 0),
		Timezone:        env.GetEnv(env.EnvTimezone, DefaultTimezone),
		IntentName:      env.GetEnv(env.EnvIntentName, DefaultIntentName),

		CacheTTL:           env.GetDuration(env.EnvCacheTTL, cache.DefaultExpiredDuration),
		CacheSweepInterval: env.GetDuration(env.EnvCacheSweepInterval, cache.DefaultExpiredTaskTimer),

		WebhookTokenHashes: env.GetList(env.EnvWebhookTokenHashes),
		AllowedIPs:         env.GetList(env.EnvAllowedIPs),
		RateLimitRPM:       env.GetInt(env.EnvRateLimitRPM, 0),
	}

	// DEBUG=true implies debug logs
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values and resolves the canteen timezone
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.CanteenID <= 0 {
		errs = append(errs, fmt.Errorf("invalid canteen id %d", c.CanteenID))
	}
	if u, err := url.Parse(c.OpenMensaBase); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid openmensa base url %q", c.OpenMensaBase))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL))
	}
	if c.UpstreamTimeout < 0 {
		errs = append(errs, fmt.Errorf("upstream timeout must not be negative, got %s", c.UpstreamTimeout))
	}
	if c.RateLimitRPM < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %d", c.RateLimitRPM))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid gin mode %q", c.GinMode))
	}
	if c.IntentName == "" {
		errs = append(errs, errors.New("intent name is required"))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	} else {
		c.location = loc
	}

	return errors.Join(errs...)
}

// Location is the canteen's timezone, UTC before Validate succeeded
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Addr is the listen address for gin
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
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
