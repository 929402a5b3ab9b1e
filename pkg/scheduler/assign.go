package scheduler

import (
	"fmt"
	"sort"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

// pickGreedy selects up to required employees for one hour-of-week slot,
// cheapest hourly rate first. Ties keep the input order. When fewer eligible
// employees exist than required, an insufficient_staff alert is recorded and
// the slot proceeds understaffed.
func (g *Generator) pickGreedy(
	employees []models.Employee,
	index *availabilityIndex,
	required, day, hour int,
	rn *run,
) []models.Employee {
	var eligible []models.Employee
	for _, emp := range employees {
		if index.Covers(emp.ID, day, hour) {
			eligible = append(eligible, emp)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].HourlyRate < eligible[j].HourlyRate
	})

	selected := min(required, len(eligible))
	if selected < required {
		rn.alert(models.AlertInsufficientStaff, models.SeverityWarning,
			fmt.Sprintf("only %d of %d required employees are available", selected, required),
			map[string]any{"day": day, "hour": hour, "available": selected, "required": required})
	}
	return eligible[:selected]
}
