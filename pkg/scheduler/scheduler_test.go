package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

func fullWeekAvailability(employeeID string) []models.AvailabilitySlot {
	var slots []models.AvailabilitySlot
	for day := 0; day < 7; day++ {
		slots = append(slots, models.AvailabilitySlot{
			EmployeeID:  employeeID,
			DayOfWeek:   day,
			StartTime:   "00:00",
			EndTime:     "23:59",
			IsAvailable: true,
		})
	}
	return slots
}

func TestGenerate_FullWeek(t *testing.T) {
	g := New(Config{WeeklyBudget: 100000, MinStaffPerHour: 1})
	employees := []models.Employee{
		{ID: "cheap", FirstName: "Dana", LastName: "Levi", HourlyRate: 10},
		{ID: "pricey", FirstName: "Noa", LastName: "Mizrahi", HourlyRate: 20},
	}
	availability := append(fullWeekAvailability("cheap"), fullWeekAvailability("pricey")...)

	res := g.Generate(employees, availability, nil, testDate)

	// The cheap employee covers every business hour: one 06:00-00:00 shift a
	// day. The pricey one fills the second peak seat: two shifts a day under
	// the strict policy (12-15 and 18-22).
	require.Len(t, res.Shifts, 21)
	assert.Empty(t, res.Alerts)

	first := res.Shifts[0]
	assert.Equal(t, "cheap", first.EmployeeID)
	assert.Equal(t, "06:00", first.StartTime)
	assert.Equal(t, "00:00", first.EndTime)
	assert.Equal(t, 210, first.BreakMinutes)
	assert.Equal(t, 145.0, first.TotalCost)

	peak := res.Shifts[7]
	assert.Equal(t, "pricey", peak.EmployeeID)
	assert.Equal(t, "12:00", peak.StartTime)
	assert.Equal(t, "15:00", peak.EndTime)

	evening := res.Shifts[8]
	assert.Equal(t, "18:00", evening.StartTime)
	assert.Equal(t, "22:00", evening.EndTime)

	// No hours before opening are ever assigned.
	for _, s := range res.Shifts {
		start, err := parseClock(s.StartTime)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, start, 6*60)
	}

	// 7 * 145 for the opener plus 7 * (60 + 80) for the peak seats, and the
	// running total is the sum of the emitted shift costs.
	assert.Equal(t, 1995.0, res.TotalCost)
	total := 0.0
	for _, s := range res.Shifts {
		total += s.TotalCost
	}
	assert.Equal(t, total, res.TotalCost)
}

func TestGenerate_Idempotent(t *testing.T) {
	g := New(Config{WeeklyBudget: 5000, MinStaffPerHour: 1})
	employees := []models.Employee{
		{ID: "a", HourlyRate: 12},
		{ID: "b", HourlyRate: 18},
	}
	availability := append(fullWeekAvailability("a"), fullWeekAvailability("b")...)

	first := g.Generate(employees, availability, nil, testDate)
	second := g.Generate(employees, availability, nil, testDate)

	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.Alerts, second.Alerts)
	require.Equal(t, len(first.Shifts), len(second.Shifts))
	for i := range first.Shifts {
		a, b := first.Shifts[i], second.Shifts[i]
		a.ID, b.ID = "", "" // IDs are random, everything else must match
		assert.Equal(t, a, b)
	}
}

func TestGenerate_UnderstaffedWeekAccumulatesAlerts(t *testing.T) {
	g := New(Config{WeeklyBudget: 100000, MinStaffPerHour: 1})
	employees := []models.Employee{{ID: "solo", HourlyRate: 10}}
	availability := fullWeekAvailability("solo")

	res := g.Generate(employees, availability, nil, testDate)

	// One employee cannot fill the second peak seat: 7 peak hours a day.
	require.Len(t, res.Alerts, 49)
	for _, a := range res.Alerts {
		assert.Equal(t, models.AlertInsufficientStaff, a.Type)
		assert.Equal(t, 1, a.Details["available"])
		assert.Equal(t, 2, a.Details["required"])
	}
	require.Len(t, res.Shifts, 7)
}

func TestGenerate_MergePolicyModes(t *testing.T) {
	// Demand at 01:00 and 04:00 with availability limited to that night
	// window, so only those two hours are ever staffed. Missing demand keys
	// fall back to the default pattern, but nobody covers business hours.
	demand := SimpleDemandMap{
		"day_0_hour_1": 12,
		"day_0_hour_4": 12,
	}
	employees := []models.Employee{{ID: "e1", HourlyRate: 10}}
	availability := []models.AvailabilitySlot{{
		EmployeeID:  "e1",
		DayOfWeek:   0,
		StartTime:   "01:00",
		EndTime:     "05:00",
		IsAvailable: true,
	}}

	strict := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1, MergePolicy: MergeStrict})
	res := strict.Generate(employees, availability, demand, testDate)
	split := nightShifts(res.Shifts)
	require.Len(t, split, 2)
	assert.Equal(t, "01:00", split[0].StartTime)
	assert.Equal(t, "02:00", split[0].EndTime)
	assert.Equal(t, "04:00", split[1].StartTime)
	assert.Equal(t, "05:00", split[1].EndTime)

	tolerant := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1, MergePolicy: MergeGapTolerant})
	res = tolerant.Generate(employees, availability, demand, testDate)
	bridged := nightShifts(res.Shifts)
	require.Len(t, bridged, 1)
	assert.Equal(t, "01:00", bridged[0].StartTime)
	assert.Equal(t, "05:00", bridged[0].EndTime)
	// The bridged hours are paid: four worked hours, no break.
	assert.Equal(t, 40.0, bridged[0].TotalCost)
}

// nightShifts returns the day-0 shifts starting before opening hours.
func nightShifts(shifts []models.Shift) []models.Shift {
	var out []models.Shift
	for _, s := range shifts {
		start, _ := parseClock(s.StartTime)
		if s.Date.Equal(testDate) && start < 6*60 {
			out = append(out, s)
		}
	}
	return out
}
