// Package forecast talks to the demand-forecast AI service and caches its
// per-week forecast details in Redis.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oryosefi2/shift-mind/pkg/scheduler"
)

var (
	// ErrNotFound means the forecast does not exist or has expired.
	ErrNotFound = errors.New("forecast not found")
	// ErrUnavailable means the forecast service could not be reached.
	ErrUnavailable = errors.New("forecast service unavailable")
	// ErrUpstream means the forecast service reported an internal failure.
	ErrUpstream = errors.New("forecast service error")
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 6 * time.Hour

	// DefaultLookbackWeeks is the baseline window the AI service assumes.
	DefaultLookbackWeeks = 8
)

// CacheKey builds the cache key the AI service and this client share for one
// business/week forecast.
func CacheKey(businessID, week string, lookbackWeeks int) string {
	return fmt.Sprintf("forecast_%s_%s_lb%d", businessID, week, lookbackWeeks)
}

// Client is an HTTP client for the forecast service. cache may be nil, in
// which case every Details call goes to the service.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	log      logrus.FieldLogger
}

// NewClient builds a forecast client for the service at baseURL.
func NewClient(baseURL string, cache *redis.Client, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:  trimTrailingSlash(baseURL),
		http:     &http.Client{Timeout: defaultTimeout},
		cache:    cache,
		cacheTTL: defaultCacheTTL,
		log:      log,
	}
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// GenerateSummary is the AI service's response to a generate call.
type GenerateSummary struct {
	BusinessID        string         `json:"business_id"`
	TargetWeek        string         `json:"target_week"`
	CacheKey          string         `json:"cache_key"`
	TotalForecasts    int            `json:"total_forecasts"`
	AverageConfidence float64        `json:"average_confidence"`
	Summary           map[string]any `json:"summary"`
	CreatedAt         string         `json:"created_at"`
}

// HourlyRecord is one forecasted hour as returned by the service.
type HourlyRecord struct {
	Date             string  `json:"date"` // 2006-01-02
	HourOfDay        int     `json:"hour_of_day"`
	ForecastedDemand float64 `json:"forecasted_demand"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// Details is a full per-hour forecast for one week.
type Details struct {
	CacheKey          string         `json:"cache_key"`
	Forecasts         []HourlyRecord `json:"forecasts"`
	AverageConfidence float64        `json:"average_confidence"`
}

// Weekly converts the flat record list into the tagged forecast variant the
// schedule generator consumes.
func (d *Details) Weekly() scheduler.WeeklyForecast {
	out := make(scheduler.WeeklyForecast)
	for _, r := range d.Forecasts {
		byHour, ok := out[r.Date]
		if !ok {
			byHour = make(map[int]scheduler.HourlyDemand, 24)
			out[r.Date] = byHour
		}
		byHour[r.HourOfDay] = scheduler.HourlyDemand{
			Demand:     r.ForecastedDemand,
			Confidence: r.ConfidenceScore,
		}
	}
	return out
}

// Generate asks the AI service to build a forecast for the given week.
func (c *Client) Generate(ctx context.Context, businessID, week string, lookbackWeeks int) (*GenerateSummary, error) {
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	payload, err := json.Marshal(map[string]any{
		"business_id":    businessID,
		"week":           week,
		"lookback_weeks": lookbackWeeks,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecast/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.WithFields(logrus.Fields{"business_id": businessID, "week": week}).Info("requesting demand forecast")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Error("forecast service unreachable")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var summary GenerateSummary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			return nil, fmt.Errorf("decode forecast summary: %w", err)
		}
		c.log.WithFields(logrus.Fields{
			"total_forecasts":    summary.TotalForecasts,
			"average_confidence": summary.AverageConfidence,
		}).Info("forecast generated")
		return &summary, nil
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrUpstream, errorDetail(resp))
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %s", ErrUpstream, errorDetail(resp))
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
}

// Details fetches a full forecast by cache key, serving from Redis when a
// cached copy exists.
func (c *Client) Details(ctx context.Context, cacheKey, businessID string) (*Details, error) {
	if c.cache != nil {
		raw, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached Details
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Bad cache entries are dropped and refetched.
			c.cache.Del(ctx, cacheKey)
		} else if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("forecast cache read failed")
		}
	}

	endpoint := fmt.Sprintf("%s/forecast/details/%s?business_id=%s",
		c.baseURL, url.PathEscape(cacheKey), url.QueryEscape(businessID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var details Details
		if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
			return nil, fmt.Errorf("decode forecast details: %w", err)
		}
		details.CacheKey = cacheKey
		if c.cache != nil {
			if raw, err := json.Marshal(&details); err == nil {
				if err := c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
					c.log.WithError(err).Warn("forecast cache write failed")
				}
			}
		}
		return &details, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
}

// Delete removes a forecast from the AI service cache and the local Redis copy.
func (c *Client) Delete(ctx context.Context, cacheKey, businessID string) error {
	endpoint := fmt.Sprintf("%s/forecast/cache/%s?business_id=%s",
		c.baseURL, url.PathEscape(cacheKey), url.QueryEscape(businessID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if c.cache != nil {
		c.cache.Del(ctx, cacheKey)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
}

// Healthy reports whether the forecast service answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("forecast service health check failed")
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func errorDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Detail == "" {
		return resp.Status
	}
	return body.Detail
}
