package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oryosefi2/shift-mind/pkg/database"
	"github.com/oryosefi2/shift-mind/pkg/forecast"
	"github.com/oryosefi2/shift-mind/pkg/metrics"
	"github.com/oryosefi2/shift-mind/pkg/models"
	"github.com/oryosefi2/shift-mind/pkg/scheduler"
)

// GenerateSchedule builds a weekly schedule draft for the authenticated
// business and persists it with its shifts.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	started := time.Now()
	businessID := c.GetString("businessID")
	week := c.Param("week")

	weekStart, err := ParseWeek(week)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MinStaffPerHour <= 0 {
		req.MinStaffPerHour = 1
	}

	employees, err := h.loadEmployees(businessID)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		h.Log.WithError(err).Error("failed to load employees")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load employees"})
		return
	}
	if len(employees) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No employees with an hourly rate defined for this business"})
		return
	}

	availability, err := h.loadAvailability(businessID)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		h.Log.WithError(err).Error("failed to load availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load availability"})
		return
	}
	if len(availability) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No availability defined for this business"})
		return
	}

	demand, alerts := h.resolveDemand(c, businessID, week, &req)

	policy := scheduler.MergeStrict
	if req.AllowGapBridging {
		policy = scheduler.MergeGapTolerant
	}

	gen := scheduler.New(scheduler.Config{
		WeeklyBudget:    req.WeeklyBudget,
		MinStaffPerHour: req.MinStaffPerHour,
		MergePolicy:     policy,
	})
	result := gen.Generate(employees, availability, demand, weekStart)
	alerts = append(alerts, result.Alerts...)

	schedule, err := h.saveSchedule(businessID, weekStart, result)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		h.Log.WithError(err).Error("failed to persist schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save schedule"})
		return
	}

	h.RecordUsage(c, len(result.Shifts), len(employees))
	h.observeGeneration(started, result, req.WeeklyBudget, alerts)

	h.Log.WithFields(logrus.Fields{
		"business_id": businessID,
		"week":        week,
		"shifts":      len(result.Shifts),
		"alerts":      len(alerts),
		"total_cost":  result.TotalCost,
	}).Info("schedule generated")

	c.JSON(http.StatusOK, models.ScheduleResponse{
		ScheduleID:        schedule.ID,
		WeekStart:         weekStart.Format("2006-01-02"),
		TotalCost:         result.TotalCost,
		BudgetUtilization: utilization(result.TotalCost, req.WeeklyBudget),
		Shifts:            shiftViews(result.Shifts, employees),
		Alerts:            alerts,
		Status:            schedule.Status,
	})
}

// GetSchedule returns the latest persisted schedule for a week.
func (h *Handler) GetSchedule(c *gin.Context) {
	businessID := c.GetString("businessID")

	weekStart, err := ParseWeek(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var schedule database.Schedule
	err = h.DB.Where("business_id = ? AND week_start_date = ?", businessID, weekStart).
		Order("created_at desc").First(&schedule).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule found for this week"})
		return
	}

	var rows []database.Shift
	if err := h.DB.Where("schedule_id = ?", schedule.ID).
		Order("date, start_time").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load shifts"})
		return
	}

	names := h.employeeNames(businessID)
	views := make([]models.ShiftView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.ShiftView{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: names[row.EmployeeID],
			Date:         row.Date.Format("2006-01-02"),
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			BreakMinutes: row.BreakMinutes,
			HourlyRate:   row.HourlyRate,
			TotalCost:    row.TotalCost,
		})
	}

	c.JSON(http.StatusOK, models.ScheduleResponse{
		ScheduleID: schedule.ID,
		WeekStart:  schedule.WeekStartDate.Format("2006-01-02"),
		TotalCost:  schedule.TotalCost,
		Shifts:     views,
		Alerts:     []models.Alert{},
		Status:     schedule.Status,
	})
}

// resolveDemand picks the demand source for a generation request: the
// confidence-weighted forecast from the forecast service when requested, the
// inline demand map otherwise, or nil for the heuristic pattern. Forecast
// load outcomes surface as alerts, never as request failures.
func (h *Handler) resolveDemand(c *gin.Context, businessID, week string, req *models.ScheduleRequest) (scheduler.DemandSource, []models.Alert) {
	alerts := []models.Alert{}

	if req.UseForecast {
		lookback := req.LookbackWeeks
		if lookback <= 0 {
			lookback = forecast.DefaultLookbackWeeks
		}
		cacheKey := forecast.CacheKey(businessID, week, lookback)

		details, err := h.Forecast.Details(c.Request.Context(), cacheKey, businessID)
		switch {
		case err == nil:
			alerts = append(alerts, models.Alert{
				Type:     models.AlertForecastLoaded,
				Severity: models.SeverityInfo,
				Message:  fmt.Sprintf("forecast loaded: %d hourly records", len(details.Forecasts)),
				Details: map[string]any{
					"cache_key":          cacheKey,
					"records":            len(details.Forecasts),
					"average_confidence": details.AverageConfidence,
				},
			})
			return details.Weekly(), alerts
		case errors.Is(err, forecast.ErrNotFound):
			alerts = append(alerts, models.Alert{
				Type:     models.AlertMissingForecast,
				Severity: models.SeverityWarning,
				Message:  "no forecast found for this week, using the default demand pattern",
				Details:  map[string]any{"cache_key": cacheKey},
			})
		default:
			h.Log.WithError(err).Warn("forecast load failed")
			alerts = append(alerts, models.Alert{
				Type:     models.AlertForecastError,
				Severity: models.SeverityWarning,
				Message:  "forecast could not be loaded, using the default demand pattern",
				Details:  map[string]any{"cache_key": cacheKey, "error": err.Error()},
			})
		}
		return nil, alerts
	}

	if len(req.ForecastData) > 0 {
		return scheduler.SimpleDemandMap(req.ForecastData), alerts
	}
	return nil, alerts
}

func (h *Handler) loadEmployees(businessID string) ([]models.Employee, error) {
	var rows []database.Employee
	err := h.DB.Where("business_id = ? AND hourly_rate IS NOT NULL", businessID).
		Order("hourly_rate asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	employees := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		var skills []string
		if row.Skills != "" {
			skills = strings.Split(row.Skills, ",")
		}
		employees = append(employees, models.Employee{
			ID:         row.ID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			HourlyRate: *row.HourlyRate,
			Skills:     skills,
		})
	}
	return employees, nil
}

func (h *Handler) loadAvailability(businessID string) ([]models.AvailabilitySlot, error) {
	var rows []database.Availability
	err := h.DB.Where("business_id = ? AND is_available = ?", businessID, true).
		Order("employee_id, day_of_week, start_time").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	slots := make([]models.AvailabilitySlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, models.AvailabilitySlot{
			EmployeeID:  row.EmployeeID,
			DayOfWeek:   row.DayOfWeek,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			IsAvailable: row.IsAvailable,
		})
	}
	return slots, nil
}

// saveSchedule persists the schedule draft and its shifts in one transaction.
func (h *Handler) saveSchedule(businessID string, weekStart time.Time, result scheduler.Result) (*database.Schedule, error) {
	schedule := &database.Schedule{
		ID:            uuid.NewString(),
		BusinessID:    businessID,
		Name:          fmt.Sprintf("Week of %s", weekStart.Format("02/01/2006")),
		WeekStartDate: weekStart,
		Status:        "draft",
		TotalHours:    totalScheduleHours(result.Shifts),
		TotalCost:     result.TotalCost,
	}

	tx := h.DB.Begin()
	if err := tx.Error; err != nil {
		return nil, err
	}
	if err := tx.Create(schedule).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, s := range result.Shifts {
		row := database.Shift{
			ID:           s.ID,
			BusinessID:   businessID,
			ScheduleID:   schedule.ID,
			EmployeeID:   s.EmployeeID,
			Date:         s.Date,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			BreakMinutes: s.BreakMinutes,
			HourlyRate:   s.HourlyRate,
			TotalCost:    s.TotalCost,
			Status:       "scheduled",
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return schedule, tx.Commit().Error
}

func (h *Handler) employeeNames(businessID string) map[string]string {
	var rows []database.Employee
	h.DB.Where("business_id = ?", businessID).Find(&rows)

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.FirstName + " " + row.LastName
	}
	return names
}

func (h *Handler) observeGeneration(started time.Time, result scheduler.Result, budget float64, alerts []models.Alert) {
	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	metrics.GenerationDuration.Observe(time.Since(started).Seconds())
	metrics.LastRunCost.Set(result.TotalCost)
	metrics.LastRunBudgetUtilization.Set(utilization(result.TotalCost, budget))
	metrics.LastRunShifts.Set(float64(len(result.Shifts)))
	for _, a := range alerts {
		metrics.AlertsTotal.WithLabelValues(string(a.Type)).Inc()
	}
}

func shiftViews(shifts []models.Shift, employees []models.Employee) []models.ShiftView {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}

	views := make([]models.ShiftView, 0, len(shifts))
	for _, s := range shifts {
		views = append(views, models.ShiftView{
			ID:           s.ID,
			EmployeeID:   s.EmployeeID,
			EmployeeName: names[s.EmployeeID],
			Date:         s.Date.Format("2006-01-02"),
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			BreakMinutes: s.BreakMinutes,
			HourlyRate:   s.HourlyRate,
			TotalCost:    s.TotalCost,
		})
	}
	return views
}

func utilization(totalCost, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return totalCost / budget * 100
}

// totalScheduleHours sums the worked-hour counts of all shifts, counting
// overnight shifts across midnight correctly.
func totalScheduleHours(shifts []models.Shift) int {
	total := 0
	for _, s := range shifts {
		total += shiftHours(s.StartTime, s.EndTime)
	}
	return total
}

func shiftHours(start, end string) int {
	parse := func(clock string) int {
		var hh, mm int
		fmt.Sscanf(clock, "%d:%d", &hh, &mm)
		return hh*60 + mm
	}
	diff := parse(end) - parse(start)
	if diff <= 0 {
		diff += 24 * 60
	}
	return diff / 60
}
