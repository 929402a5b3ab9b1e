package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekPattern = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)

// ParseWeek parses a week string like "2025-W43" into the Sunday the schedule
// week starts on (day-of-week 0).
func ParseWeek(week string) (time.Time, error) {
	m := weekPattern.FindStringSubmatch(week)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid week format %q, use YYYY-WNN (e.g. 2025-W43)", week)
	}

	year, _ := strconv.Atoi(m[1])
	num, _ := strconv.Atoi(m[2])
	if num < 1 || num > 53 {
		return time.Time{}, fmt.Errorf("week number %d out of range", num)
	}

	// Week 1 is the week containing January 1st.
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	week1Sunday := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	return week1Sunday.AddDate(0, 0, (num-1)*7), nil
}
