package openmensa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mensa/internal/dates"
	"mensa/internal/obs"
)

const (
	// DefaultBaseURL is the OpenMensa v2 canteens endpoint
	DefaultBaseURL = "https://openmensa.org/api/v2/canteens"

	// Maximum accepted meals payload (1MB)
	maxMealsResponseSize = 1 << 20
)

var (
	ErrMalformedPayload = errors.New("malformed meals payload")
)

// StatusError is returned when OpenMensa answers with a non-2xx status
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openmensa returned status %d for %s", e.Code, e.URL)
}

// Client fetches meal listings from OpenMensa
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *obs.Metrics
}

// NewClient creates a new OpenMensa client.
// A nil httpClient uses http.DefaultClient, a nil logger the default logger.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger, metrics *obs.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
	}
}

// URL returns the meals endpoint of a canteen on a day
func (c *Client) URL(canteenID int, date time.Time) string {
	return fmt.Sprintf("%s/%d/days/%s/meals", c.baseURL, canteenID, dates.Format(date))
}

// Meals fetches the listing of a canteen on a day. It makes exactly one request and never retries.
func (c *Client) Meals(ctx context.Context, canteenID int, date time.Time) ([]Meal, error) {
	url := c.URL(canteenID, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "requesting meals", "url", url)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(0, time.Since(start))
		return nil, fmt.Errorf("failed to request meals: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxMealsResponseSize))
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMealsResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read meals response: %w", err)
	}
	if len(body) > maxMealsResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrMalformedPayload, maxMealsResponseSize)
	}

	var meals []Meal
	if err := json.Unmarshal(body, &meals); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if meals == nil {
		// a literal null is not a listing
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
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
