// Package scheduler implements greedy weekly schedule generation: demand is
// converted to an hourly staffing requirement, the cheapest available
// employees are assigned slot by slot, and the resulting hour grid is merged
// into contiguous paid shifts under an advisory weekly budget.
package scheduler

import (
	"time"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

// MergePolicy selects how assigned hours are merged into shifts.
type MergePolicy int

const (
	// MergeStrict breaks a shift whenever the next assigned hour is not
	// exactly one past the previous.
	MergeStrict MergePolicy = iota
	// MergeGapTolerant bridges gaps of up to maxBridgeGap hours, paying the
	// bridged hours as worked time.
	MergeGapTolerant
)

// maxBridgeGap is the largest gap (in hours) the tolerant policy will bridge.
const maxBridgeGap = 3

const (
	defaultDemandPerStaff      = 15.0
	defaultMaxStaffPerHour     = 5
	defaultConfidenceThreshold = 0.7
)

// Config carries the knobs of one schedule generation.
type Config struct {
	WeeklyBudget    float64
	MinStaffPerHour int
	MergePolicy     MergePolicy

	// Forecast-to-staff conversion settings. Zero values pick the defaults.
	DemandPerStaff      float64
	MaxStaffPerHour     int
	ConfidenceThreshold float64
}

// Generator produces weekly schedules. It holds configuration only; all
// per-run state lives in a run accumulator, so a single Generator may be
// shared across sequential and concurrent generations.
type Generator struct {
	cfg Config
}

// New returns a Generator with defaults applied for unset conversion settings.
func New(cfg Config) *Generator {
	if cfg.DemandPerStaff <= 0 {
		cfg.DemandPerStaff = defaultDemandPerStaff
	}
	if cfg.MaxStaffPerHour <= 0 {
		cfg.MaxStaffPerHour = defaultMaxStaffPerHour
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = defaultConfidenceThreshold
	}
	return &Generator{cfg: cfg}
}

// Result is the outcome of one generation run.
type Result struct {
	Shifts    []models.Shift
	Alerts    []models.Alert
	TotalCost float64
}

// run accumulates the running cost and the ordered alert sequence of a single
// generation. It is created per call and never shared.
type run struct {
	totalCost       float64
	alerts          []models.Alert
	missingForecast bool
}

func (r *run) alert(t models.AlertType, sev models.AlertSeverity, msg string, details map[string]any) {
	r.alerts = append(r.alerts, models.Alert{Type: t, Severity: sev, Message: msg, Details: details})
}

type dayHour struct {
	day  int
	hour int
}

// Generate builds the schedule for the week starting at weekStart (the Sunday
// that day-of-week 0 maps to). demand may be nil, a SimpleDemandMap or a
// WeeklyForecast. The call is a pure function of its inputs apart from the
// random shift IDs.
func (g *Generator) Generate(
	employees []models.Employee,
	availability []models.AvailabilitySlot,
	demand DemandSource,
	weekStart time.Time,
) Result {
	rn := &run{}
	index := newAvailabilityIndex(availability)
	assignments := make(map[string][]dayHour, len(employees))

	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		for hour := 0; hour < 24; hour++ {
			required := g.requiredStaff(day, hour, date, demand, rn)
			if required == 0 {
				continue // closed hours
			}
			for _, emp := range g.pickGreedy(employees, index, required, day, hour, rn) {
				assignments[emp.ID] = append(assignments[emp.ID], dayHour{day, hour})
			}
		}
	}

	shifts := g.mergeShifts(assignments, employees, weekStart, rn)
	return Result{Shifts: shifts, Alerts: rn.alerts, TotalCost: rn.totalCost}
}
