package food

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mensa/internal/dates"
	"mensa/internal/locale"
	"mensa/internal/obs"
	"mensa/internal/openmensa"
)

// MealFetcher returns the listing of a canteen on a day
type MealFetcher interface {
	GetMeals(ctx context.Context, canteenID int, date time.Time) ([]openmensa.Meal, error)
}

type HandlerConfig struct {
	CanteenID  int
	IntentName string
	Location   *time.Location // decides which calendar day "today" is
	Debug      bool           // log every incoming request
}

// Handler answers the assistant's food intent
type Handler struct {
	meals MealFetcher
	cfg   HandlerConfig

	now     func() time.Time
	logger  *slog.Logger
	metrics *obs.Metrics
}

func NewHandler(meals MealFetcher, cfg HandlerConfig, now func() time.Time, logger *slog.Logger, metrics *obs.Metrics) *Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		meals:   meals,
		cfg:     cfg,
		now:     now,
		logger:  logger,
		metrics: metrics,
	}
}

// Answer turns a request into the sentence to speak. It never fails: every problem maps to a localized phrase.
func (h *Handler) Answer(ctx context.Context, req WebhookRequest) string {
	lang := locale.Resolve(req.Lang)

	day := req.Day()
	if req.Result.Metadata.IntentName != h.cfg.IntentName || day == "" {
		h.metrics.ObserveAnswer(obs.OutcomeNoDay, string(lang))
		return locale.T(lang, locale.KeyNoDay)
	}

	date := dates.Resolve(day, lang, dates.Today(h.now(), h.cfg.Location))

	if !dates.IsWeekday(date) {
		h.metrics.ObserveAnswer(obs.OutcomeWeekend, string(lang))
		return locale.T(lang, locale.KeyClosedWeekend)
	}

	meals, err := h.meals.GetMeals(ctx, h.cfg.CanteenID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to get meals",
			"canteen_id", h.cfg.CanteenID,
			"date", dates.Format(date),
			"error", err,
		)
		h.metrics.ObserveAnswer(obs.OutcomeFailed, string(lang))
		return locale.T(lang, locale.KeyFailed)
	}

	summary := BuildSummary(meals, lang)
	if summary == "" {
		h.logger.InfoContext(ctx, "no serving line has a meal", "date", dates.Format(date), "meals", len(meals))
		h.metrics.ObserveAnswer(obs.OutcomeEmpty, string(lang))
		return summary
	}

	h.metrics.ObserveAnswer(obs.OutcomeServed, string(lang))
	return summary
}

// PostWebhook handles the assistant's fulfillment call
func (h *Handler) PostWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WarnContext(c.Request.Context(), "invalid webhook body", "error", err)
		c.JSON(http.StatusBadRequest, NewWebhookResponse(locale.T(locale.Default, locale.KeyNoDay)))
		return
	}

	if h.cfg.Debug {
		h.logger.DebugContext(c.Request.Context(), "webhook request", "request", req)
	}

	c.JSON(http.StatusOK, NewWebhookResponse(h.Answer(c.Request.Context(), req)))
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
