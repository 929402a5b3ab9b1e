package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oryosefi2/shift-mind/pkg/forecast"
)

// GenerateForecast asks the forecast service to build a demand forecast for
// the given week from the business's demand history.
func (h *Handler) GenerateForecast(c *gin.Context) {
	businessID := c.GetString("businessID")
	week := c.Param("week")

	if _, err := ParseWeek(week); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		LookbackWeeks int `json:"lookback_weeks"`
	}
	// Body is optional; defaults apply when absent.
	_ = c.ShouldBindJSON(&req)
	if req.LookbackWeeks <= 0 {
		req.LookbackWeeks = forecast.DefaultLookbackWeeks
	}

	if !h.Forecast.Healthy(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Forecast service is not available"})
		return
	}

	summary, err := h.Forecast.Generate(c.Request.Context(), businessID, week, req.LookbackWeeks)
	if err != nil {
		h.forecastError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetForecastDetails returns the cached hourly forecast records for a week.
func (h *Handler) GetForecastDetails(c *gin.Context) {
	businessID := c.GetString("businessID")
	week := c.Param("week")

	if _, err := ParseWeek(week); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cacheKey := c.Query("cache_key")
	if cacheKey == "" {
		lookback := forecast.DefaultLookbackWeeks
		cacheKey = forecast.CacheKey(businessID, week, lookback)
	}

	details, err := h.Forecast.Details(c.Request.Context(), cacheKey, businessID)
	if err != nil {
		if errors.Is(err, forecast.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No forecast found for this week"})
			return
		}
		h.forecastError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// DeleteForecast evicts a cached forecast so the next generation rebuilds it.
func (h *Handler) DeleteForecast(c *gin.Context) {
	businessID := c.GetString("businessID")
	week := c.Param("week")

	if _, err := ParseWeek(week); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cacheKey := c.Query("cache_key")
	if cacheKey == "" {
		cacheKey = forecast.CacheKey(businessID, week, forecast.DefaultLookbackWeeks)
	}

	if err := h.Forecast.Delete(c.Request.Context(), cacheKey, businessID); err != nil {
		if errors.Is(err, forecast.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No forecast found for this week"})
			return
		}
		h.forecastError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Forecast cache cleared", "cache_key": cacheKey})
}

// ForecastHealth reports whether the forecast service is reachable.
func (h *Handler) ForecastHealth(c *gin.Context) {
	if h.Forecast.Healthy(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
}

func (h *Handler) forecastError(c *gin.Context, err error) {
	h.Log.WithError(err).Warn("forecast request failed")
	switch {
	case errors.Is(err, forecast.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, forecast.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Forecast service is not available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
