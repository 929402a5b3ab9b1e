package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

type empDay struct {
	employeeID string
	day        int
}

// window is a time-of-day range in minutes since midnight. start > end means
// the window wraps past midnight.
type window struct {
	start int
	end   int
}

// availabilityIndex answers whether an employee is available at a given
// day-of-week and hour. Only the first available slot per employee and day is
// consulted, matching the order the slots were provided in.
type availabilityIndex struct {
	windows map[empDay]window
}

func newAvailabilityIndex(slots []models.AvailabilitySlot) *availabilityIndex {
	idx := &availabilityIndex{windows: make(map[empDay]window, len(slots))}
	for _, s := range slots {
		if !s.IsAvailable {
			continue
		}
		key := empDay{s.EmployeeID, s.DayOfWeek}
		if _, seen := idx.windows[key]; seen {
			continue
		}
		start, err := parseClock(s.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(s.EndTime)
		if err != nil {
			continue
		}
		idx.windows[key] = window{start: start, end: end}
	}
	return idx
}

// Covers reports whether the hour (taken as a zero-minute time of day) falls
// inside the employee's window for that day, with wraparound semantics for
// overnight windows.
func (idx *availabilityIndex) Covers(employeeID string, day, hour int) bool {
	w, ok := idx.windows[empDay{employeeID, day}]
	if !ok {
		return false
	}
	t := hour * 60
	if w.start <= w.end {
		return w.start <= t && t <= w.end
	}
	// Overnight window crossing midnight.
	return t >= w.start || t <= w.end
}

// parseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return h*60 + m, nil
}
