package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

func TestAvailabilityIndex_NormalWindow(t *testing.T) {
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	})

	assert.True(t, idx.Covers("e1", 2, 9))
	assert.True(t, idx.Covers("e1", 2, 17))
	assert.False(t, idx.Covers("e1", 2, 18))
	assert.False(t, idx.Covers("e1", 3, 9))
	assert.False(t, idx.Covers("e2", 2, 9))
}

func TestAvailabilityIndex_OvernightWraparound(t *testing.T) {
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 1, StartTime: "22:00", EndTime: "06:00", IsAvailable: true},
	})

	assert.True(t, idx.Covers("e1", 1, 2), "overnight window covers early morning")
	assert.True(t, idx.Covers("e1", 1, 22))
	assert.True(t, idx.Covers("e1", 1, 6))
	assert.False(t, idx.Covers("e1", 1, 12))
}

func TestAvailabilityIndex_FirstSlotWins(t *testing.T) {
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 0, StartTime: "09:00", EndTime: "11:00", IsAvailable: false},
		{EmployeeID: "e1", DayOfWeek: 0, StartTime: "14:00", EndTime: "16:00", IsAvailable: true},
		{EmployeeID: "e1", DayOfWeek: 0, StartTime: "18:00", EndTime: "20:00", IsAvailable: true},
	})

	// Unavailable slots are skipped, then only the first available slot for
	// the day is consulted.
	assert.True(t, idx.Covers("e1", 0, 15))
	assert.False(t, idx.Covers("e1", 0, 10))
	assert.False(t, idx.Covers("e1", 0, 19))
}

func TestPickGreedy_CheapestFirst(t *testing.T) {
	g := New(Config{WeeklyBudget: 1000, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{
		{ID: "expensive", HourlyRate: 20},
		{ID: "cheap", HourlyRate: 10},
	}
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "expensive", DayOfWeek: 0, StartTime: "08:00", EndTime: "18:00", IsAvailable: true},
		{EmployeeID: "cheap", DayOfWeek: 0, StartTime: "08:00", EndTime: "18:00", IsAvailable: true},
	})

	picked := g.pickGreedy(employees, idx, 1, 0, 10, rn)
	require.Len(t, picked, 1)
	assert.Equal(t, "cheap", picked[0].ID)
	assert.Empty(t, rn.alerts)
}

func TestPickGreedy_StableOnEqualRates(t *testing.T) {
	g := New(Config{WeeklyBudget: 1000, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{
		{ID: "first", HourlyRate: 12},
		{ID: "second", HourlyRate: 12},
	}
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "first", DayOfWeek: 4, StartTime: "08:00", EndTime: "18:00", IsAvailable: true},
		{EmployeeID: "second", DayOfWeek: 4, StartTime: "08:00", EndTime: "18:00", IsAvailable: true},
	})

	picked := g.pickGreedy(employees, idx, 1, 4, 10, rn)
	require.Len(t, picked, 1)
	assert.Equal(t, "first", picked[0].ID)
}

func TestPickGreedy_InsufficientStaffAlert(t *testing.T) {
	g := New(Config{WeeklyBudget: 1000, MinStaffPerHour: 1})
	rn := &run{}
	employees := []models.Employee{
		{ID: "e1", HourlyRate: 10},
		{ID: "e2", HourlyRate: 15},
	}
	idx := newAvailabilityIndex([]models.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 5, StartTime: "08:00", EndTime: "18:00", IsAvailable: true},
	})

	picked := g.pickGreedy(employees, idx, 3, 5, 10, rn)
	assert.Len(t, picked, 1)

	require.Len(t, rn.alerts, 1)
	alert := rn.alerts[0]
	assert.Equal(t, models.AlertInsufficientStaff, alert.Type)
	assert.Equal(t, models.SeverityWarning, alert.Severity)
	assert.Equal(t, 5, alert.Details["day"])
	assert.Equal(t, 10, alert.Details["hour"])
	assert.Equal(t, 1, alert.Details["available"])
	assert.Equal(t, 3, alert.Details["required"])
}
