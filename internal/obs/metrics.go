package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcomes
const (
	OutcomeServed  = "served"
	OutcomeEmpty   = "empty"
	OutcomeNoDay   = "noday"
	OutcomeWeekend = "weekend"
	OutcomeFailed  = "failed"
)

// Cache lookup results
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
	CacheError   = "error"
)

// Metrics holds the service collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	answers          *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	cacheStoreFail   prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	answers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mensa_webhook_answers_total",
		Help: "Total webhook answers by outcome",
	}, []string{"outcome", "lang"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mensa_cache_lookups_total",
		Help: "Total meal cache lookups",
	}, []string{"result"})

	cacheStoreFail := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mensa_cache_store_fail_total",
		Help: "Total meal cache store failures",
	})

	upstreamRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mensa_upstream_requests_total",
		Help: "Total OpenMensa requests by status",
	}, []string{"status"})

	upstreamDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mensa_upstream_duration_seconds",
		Help:    "OpenMensa request duration",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(
		answers,
		cacheLookups,
		cacheStoreFail,
		upstreamRequests,
		upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         registry,
		answers:          answers,
		cacheLookups:     cacheLookups,
		cacheStoreFail:   cacheStoreFail,
		upstreamRequests: upstreamRequests,
		upstreamDuration: upstreamDuration,
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAnswer(outcome, lang string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(outcome, lang).Inc()
}

func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordCacheStoreFail() {
	if m == nil {
		return
	}
	m.cacheStoreFail.Inc()
}

// ObserveUpstream records one OpenMensa call. status is the HTTP status, 0 for transport errors.
func (m *Metrics) ObserveUpstream(status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(statusLabel(status)).Inc()
	m.upstreamDuration.Observe(duration.Seconds())
}

func statusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
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
