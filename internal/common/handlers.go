package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v0common "mensa/internal/v0/common"
)

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency"`
	Uptime                string `json:"uptime"`
	CanteenID             int    `json:"canteen_id"`
	CachedDays            int    `json:"cached_days"`
}

// CacheStats reports how many day listings are cached
type CacheStats interface {
	Len() int
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// StatusHandler reports uptime, the configured canteen and the cache fill
func StatusHandler(canteenID int, stats CacheStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		cached := 0
		if stats != nil {
			cached = stats.Len()
		}

		data := StatusResponse{
			InternalServerLatency: time.Since(start).String(),
			Uptime:                uptime().Truncate(time.Second).String(),
			CanteenID:             canteenID,
			CachedDays:            cached,
		}
		c.JSON(http.StatusOK, v0common.CreateSuccessResponseWithRequestID(data, v0common.RequestID(c)))
	}
}

// RegisterRoutes mounts the service endpoints under rg
func RegisterRoutes(rg *gin.RouterGroup, status gin.HandlerFunc, metrics http.Handler) {
	rg.GET("/status", status)
	if metrics != nil {
		rg.GET("/metrics", gin.WrapH(metrics))
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
