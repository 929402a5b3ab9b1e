package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

func TestSplitBlocks_Strict(t *testing.T) {
	assert.Equal(t, [][]int{{9, 10}, {14}}, splitBlocks([]int{9, 10, 14}, MergeStrict))
	assert.Equal(t, [][]int{{9, 10, 11}}, splitBlocks([]int{9, 10, 11}, MergeStrict))
	assert.Equal(t, [][]int{{9}}, splitBlocks([]int{9}, MergeStrict))
}

func TestSplitBlocks_GapTolerant(t *testing.T) {
	// A gap of three hours is bridged and the missing hours are filled in.
	assert.Equal(t, [][]int{{9, 10, 11, 12, 13, 14}}, splitBlocks([]int{9, 10, 14}, MergeGapTolerant))
	// A gap of six hours starts a new block.
	assert.Equal(t, [][]int{{9, 10}, {16}}, splitBlocks([]int{9, 10, 16}, MergeGapTolerant))
}

func TestBuildShift_CostAndBreak(t *testing.T) {
	g := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1})
	rn := &run{}
	emp := models.Employee{ID: "e1", HourlyRate: 50}

	shift := g.buildShift(emp, 1, []int{9, 10, 11, 12, 13, 14, 15, 16}, testDate, rn)

	assert.Equal(t, "09:00", shift.StartTime)
	assert.Equal(t, "17:00", shift.EndTime)
	assert.Equal(t, 60, shift.BreakMinutes)
	assert.Equal(t, 350.0, shift.TotalCost)
	assert.Equal(t, 50.0, shift.HourlyRate)
	assert.Equal(t, testDate.AddDate(0, 0, 1), shift.Date)
	assert.NotEmpty(t, shift.ID)
}

func TestBuildShift_ShortShiftHasNoBreak(t *testing.T) {
	g := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1})
	rn := &run{}
	emp := models.Employee{ID: "e1", HourlyRate: 40}

	shift := g.buildShift(emp, 0, []int{6, 7, 8}, testDate, rn)

	assert.Equal(t, 0, shift.BreakMinutes)
	assert.Equal(t, 120.0, shift.TotalCost)
}

func TestBuildShift_OvernightEndRollsToNextDay(t *testing.T) {
	g := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1})
	rn := &run{}
	emp := models.Employee{ID: "e1", HourlyRate: 30}

	shift := g.buildShift(emp, 6, []int{20, 21, 22, 23}, testDate, rn)

	assert.Equal(t, "20:00", shift.StartTime)
	assert.Equal(t, "00:00", shift.EndTime)
}

func TestMergeShifts_BudgetAlertFiresOnSecondShift(t *testing.T) {
	g := New(Config{WeeklyBudget: 100, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{
		{ID: "e1", HourlyRate: 15},
		{ID: "e2", HourlyRate: 15},
	}
	assignments := map[string][]dayHour{
		"e1": {{0, 9}, {0, 10}, {0, 11}, {0, 12}},
		"e2": {{0, 9}, {0, 10}, {0, 11}, {0, 12}},
	}

	shifts := g.mergeShifts(assignments, employees, testDate, rn)

	require.Len(t, shifts, 2)
	assert.Equal(t, 60.0, shifts[0].TotalCost)
	assert.Equal(t, 60.0, shifts[1].TotalCost)
	assert.Equal(t, 120.0, rn.totalCost)

	// 60 stays under budget, 60+60 exceeds it: exactly one alert, on the
	// second shift, and the shift is still committed.
	require.Len(t, rn.alerts, 1)
	alert := rn.alerts[0]
	assert.Equal(t, models.AlertBudgetExceeded, alert.Type)
	assert.Equal(t, models.SeverityCritical, alert.Severity)
	assert.Equal(t, 60.0, alert.Details["current_cost"])
	assert.Equal(t, 60.0, alert.Details["shift_cost"])
	assert.Equal(t, 100.0, alert.Details["budget"])
}

func TestMergeShifts_SplitsPerDay(t *testing.T) {
	g := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{{ID: "e1", HourlyRate: 20}}
	assignments := map[string][]dayHour{
		"e1": {{2, 8}, {2, 9}, {3, 8}, {3, 9}},
	}

	shifts := g.mergeShifts(assignments, employees, testDate, rn)

	require.Len(t, shifts, 2)
	assert.Equal(t, testDate.AddDate(0, 0, 2), shifts[0].Date)
	assert.Equal(t, testDate.AddDate(0, 0, 3), shifts[1].Date)
}

func TestMergeShifts_UnknownAndIdleEmployeesSkipped(t *testing.T) {
	g := New(Config{WeeklyBudget: 10000, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{
		{ID: "worked", HourlyRate: 20},
		{ID: "idle", HourlyRate: 10},
	}
	assignments := map[string][]dayHour{
		"worked": {{0, 9}},
	}

	shifts := g.mergeShifts(assignments, employees, testDate, rn)

	require.Len(t, shifts, 1)
	assert.Equal(t, "worked", shifts[0].EmployeeID)
}
