package auth

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mensa/internal/v0/common"
)

const (
	HeaderAuthorization      = "Authorization"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Middleware guards the webhook: token, client IP and requests per minute
type Middleware struct {
	tokens     *TokenSet
	allowedIPs *AllowList
	usage      *UsageTracker
	rpm        int

	logger *slog.Logger
}

// NewMiddleware creates a new middleware instance. rpm <= 0 disables rate limiting.
func NewMiddleware(tokens *TokenSet, allowedIPs *AllowList, usage *UsageTracker, rpm int, logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{
		tokens:     tokens,
		allowedIPs: allowedIPs,
		usage:      usage,
		rpm:        rpm,
		logger:     logger,
	}
}

// RequireWebhookToken validates the bearer token or basic-auth password and the client IP.
// Without configured token hashes only the IP allow-list applies.
func (m *Middleware) RequireWebhookToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.allowedIPs.Allows(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusForbidden, common.CreateErrorResponseWithRequestID(
				[]string{"IP address not allowed"}, common.RequestID(c),
			))
			return
		}

		if !m.tokens.Enabled() {
			c.Next()
			return
		}

		rawToken, ok := extractToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.CreateErrorResponseWithRequestID(
				[]string{"missing or malformed authorization header"}, common.RequestID(c),
			))
			return
		}

		if !m.tokens.Match(rawToken) {
			m.logger.WarnContext(c.Request.Context(), "rejected webhook token", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.CreateErrorResponseWithRequestID(
				[]string{"invalid token"}, common.RequestID(c),
			))
			return
		}

		c.Next()
	}
}

// RateLimit enforces the per-client requests per minute
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.rpm <= 0 || m.usage == nil {
			c.Next()
			return
		}

		client := c.ClientIP()
		if canonical, err := CanonicalizeIP(client); err == nil {
			client = canonical
		}

		current := m.usage.GetRPM(client)
		remaining := m.rpm - current - 1 // -1 for this request
		if remaining < 0 {
			remaining = 0
		}
		resetTime := time.Now().Add(UsageRetentionPeriod).Unix()

		c.Header(HeaderRateLimitLimit, strconv.Itoa(m.rpm))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(remaining))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(resetTime, 10))

		if current >= m.rpm {
			c.Header(HeaderRetryAfter, strconv.Itoa(int(UsageRetentionPeriod.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.CreateErrorResponseWithRequestID(
				[]string{"rate limit exceeded"}, common.RequestID(c),
			))
			return
		}

		m.usage.RecordRequest(client)
		c.Next()
	}
}

// extractToken reads "Bearer <token>" or, as assistant platforms send it, a basic-auth password
func extractToken(r *http.Request) (string, bool) {
	if _, password, ok := r.BasicAuth(); ok {
		return password, password != ""
	}

	authHeader := r.Header.Get(HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
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
