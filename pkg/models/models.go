package models

import "time"

// Employee is a worker that can be placed on the weekly schedule.
// Records are immutable for the duration of one generation run.
type Employee struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	HourlyRate float64  `json:"hourly_rate"`
	Skills     []string `json:"skills,omitempty"`
}

// FullName returns the display name used in schedule responses.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AvailabilitySlot is one availability window of an employee on a given
// weekday. A start time after the end time denotes an overnight window that
// wraps past midnight into the next calendar day.
type AvailabilitySlot struct {
	EmployeeID  string `json:"employee_id"`
	DayOfWeek   int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime   string `json:"start_time"`  // HH:MM
	EndTime     string `json:"end_time"`    // HH:MM
	IsAvailable bool   `json:"is_available"`
}

// Shift is a contiguous block of paid hours for one employee on one date.
// Shifts are created by the merge phase and never mutated afterwards.
type Shift struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"` // HH:MM
	EndTime      string    `json:"end_time"`   // HH:MM, may roll past midnight
	BreakMinutes int       `json:"break_minutes"`
	HourlyRate   float64   `json:"hourly_rate"`
	TotalCost    float64   `json:"total_cost"`
}

// AlertType tags the condition an alert reports.
type AlertType string

const (
	AlertInsufficientStaff     AlertType = "insufficient_staff"
	AlertBudgetExceeded        AlertType = "budget_exceeded"
	AlertMissingForecast       AlertType = "missing_forecast"
	AlertLowConfidenceForecast AlertType = "low_confidence_forecast"
	AlertForecastLoaded        AlertType = "forecast_loaded"
	AlertForecastError         AlertType = "forecast_error"
)

// AlertSeverity represents the severity level of an alert.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Alert is a structured, non-fatal diagnostic emitted during schedule
// generation. Alerts are accumulated in order and never raised as errors.
type Alert struct {
	Type     AlertType      `json:"type"`
	Severity AlertSeverity  `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details"`
}

// ScheduleRequest is the body of the schedule generation endpoint.
type ScheduleRequest struct {
	WeeklyBudget    float64 `json:"weekly_budget" binding:"required"`
	MinStaffPerHour int     `json:"min_staff_per_hour"`

	// ForecastData is the flat day_{d}_hour_{h} demand map variant.
	ForecastData map[string]float64 `json:"forecast_data,omitempty"`

	// UseForecast switches the estimator to the confidence-weighted forecast
	// loaded from the forecast service cache for this week.
	UseForecast   bool `json:"use_forecast"`
	LookbackWeeks int  `json:"lookback_weeks"`

	// AllowGapBridging opts in to the gap-tolerant merge policy that pays
	// across gaps of up to three hours.
	AllowGapBridging bool `json:"allow_gap_bridging"`
}

// ShiftView is a shift as returned to API clients, with the employee name
// joined in.
type ShiftView struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	HourlyRate   float64 `json:"hourly_rate"`
	TotalCost    float64 `json:"total_cost"`
}

// ScheduleResponse is the result of generating or fetching a weekly schedule.
type ScheduleResponse struct {
	ScheduleID        string      `json:"schedule_id"`
	WeekStart         string      `json:"week_start"`
	TotalCost         float64     `json:"total_cost"`
	BudgetUtilization float64     `json:"budget_utilization"`
	Shifts            []ShiftView `json:"shifts"`
	Alerts            []Alert     `json:"alerts"`
	Status            string      `json:"status"` // draft, approved, published
}
