package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

// mergeShifts turns the per-employee hour assignments into shifts. Employees
// are replayed in input order and days in ascending order so that identical
// inputs always produce identical shift and alert sequences.
func (g *Generator) mergeShifts(
	assignments map[string][]dayHour,
	employees []models.Employee,
	weekStart time.Time,
	rn *run,
) []models.Shift {
	var shifts []models.Shift

	for _, emp := range employees {
		assigned := assignments[emp.ID]
		if len(assigned) == 0 {
			continue
		}

		byDay := make(map[int][]int)
		for _, a := range assigned {
			byDay[a.day] = append(byDay[a.day], a.hour)
		}

		for day := 0; day < 7; day++ {
			hours := byDay[day]
			if len(hours) == 0 {
				continue
			}
			sort.Ints(hours)

			for _, block := range splitBlocks(hours, g.cfg.MergePolicy) {
				shifts = append(shifts, g.buildShift(emp, day, block, weekStart, rn))
			}
		}
	}
	return shifts
}

// splitBlocks groups sorted hours into runs of contiguous hours. Under the
// gap-tolerant policy, gaps of up to maxBridgeGap hours are filled in as
// worked hours instead of starting a new block.
func splitBlocks(hours []int, policy MergePolicy) [][]int {
	var blocks [][]int
	current := []int{hours[0]}

	for _, h := range hours[1:] {
		last := current[len(current)-1]
		switch {
		case h == last+1:
			current = append(current, h)
		case policy == MergeGapTolerant && h <= last+maxBridgeGap+1:
			for fill := last + 1; fill <= h; fill++ {
				current = append(current, fill)
			}
		default:
			blocks = append(blocks, current)
			current = []int{h}
		}
	}
	return append(blocks, current)
}

// buildShift creates the shift for one hour block, updates the running cost
// and raises a budget_exceeded alert when the total passes the weekly budget.
// The budget is advisory: the shift is committed either way.
func (g *Generator) buildShift(emp models.Employee, day int, hours []int, weekStart time.Time, rn *run) models.Shift {
	endHour := hours[len(hours)-1] + 1
	if endHour >= 24 {
		endHour -= 24 // overnight shift rolls into the next day
	}

	total := len(hours)
	breakMinutes := max(0, (total-4)*15)
	workMinutes := total*60 - breakMinutes
	cost := float64(workMinutes) / 60 * emp.HourlyRate

	if rn.totalCost+cost > g.cfg.WeeklyBudget {
		rn.alert(models.AlertBudgetExceeded, models.SeverityCritical,
			fmt.Sprintf("budget exceeded: %.2f of %.2f", rn.totalCost+cost, g.cfg.WeeklyBudget),
			map[string]any{"current_cost": rn.totalCost, "shift_cost": cost, "budget": g.cfg.WeeklyBudget})
	}
	rn.totalCost += cost

	return models.Shift{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		Date:         weekStart.AddDate(0, 0, day),
		StartTime:    fmt.Sprintf("%02d:00", hours[0]),
		EndTime:      fmt.Sprintf("%02d:00", endHour),
		BreakMinutes: breakMinutes,
		HourlyRate:   emp.HourlyRate,
		TotalCost:    cost,
	}
}
