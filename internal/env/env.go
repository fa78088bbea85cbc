package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetList splits a comma separated value, dropping blank items
func GetList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Server
const (
	EnvPort      = "PORT"
	EnvGinMode   = "GIN_MODE"
	EnvDebug     = "DEBUG"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Canteen and upstream
const (
	EnvCanteenID       = "CANTEEN_ID"
	EnvOpenMensaBase   = "OPENMENSA_BASE_URL"
	EnvUpstreamTimeout = "UPSTREAM_TIMEOUT"
	EnvTimezone        = "CANTEEN_TIMEZONE"
	EnvIntentName      = "INTENT_NAME"
)

// Cache
const (
	EnvCacheTTL           = "CACHE_TTL"
	EnvCacheSweepInterval = "CACHE_SWEEP_INTERVAL"
)

// Webhook access
const (
	EnvWebhookTokenHashes = "WEBHOOK_TOKEN_HASHES"
	EnvAllowedIPs         = "WEBHOOK_ALLOWED_IPS"
	EnvRateLimitRPM       = "WEBHOOK_RATE_LIMIT_RPM"
)

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
