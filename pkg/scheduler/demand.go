package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/oryosefi2/shift-mind/pkg/models"
)

// DemandSource is the demand input of a generation run. The two concrete
// shapes are selected explicitly by the caller; the estimator never infers
// the variant from key presence.
type DemandSource interface {
	demandSource()
}

// SimpleDemandMap maps "day_{d}_hour_{h}" keys to raw demand values. Values
// are converted to staff by dividing by ten and flooring at one; confidence
// plays no part in this variant.
type SimpleDemandMap map[string]float64

func (SimpleDemandMap) demandSource() {}

// HourlyDemand is one forecasted hour with its confidence score.
type HourlyDemand struct {
	Demand     float64
	Confidence float64
}

// WeeklyForecast maps ISO dates (2006-01-02) to per-hour demand forecasts.
type WeeklyForecast map[string]map[int]HourlyDemand

func (WeeklyForecast) demandSource() {}

// requiredStaff converts the demand for one slot into a headcount. hour and
// day are assumed range-valid by contract. date is the calendar date of the
// slot, used to key into a WeeklyForecast.
func (g *Generator) requiredStaff(day, hour int, date time.Time, demand DemandSource, rn *run) int {
	switch src := demand.(type) {
	case SimpleDemandMap:
		if v, ok := src[fmt.Sprintf("day_%d_hour_%d", day, hour)]; ok {
			return max(1, int(v/10))
		}
	case WeeklyForecast:
		hd, ok := src[date.Format("2006-01-02")][hour]
		if !ok {
			if !rn.missingForecast {
				rn.missingForecast = true
				rn.alert(models.AlertMissingForecast, models.SeverityWarning,
					"forecast has no data for part of the week, using the default demand pattern",
					map[string]any{"day": day, "hour": hour})
			}
			break
		}
		if hd.Confidence >= g.cfg.ConfidenceThreshold {
			n := int(math.Round(hd.Demand / g.cfg.DemandPerStaff))
			return min(max(n, g.cfg.MinStaffPerHour), g.cfg.MaxStaffPerHour)
		}
		rn.alert(models.AlertLowConfidenceForecast, models.SeverityWarning,
			fmt.Sprintf("forecast confidence %.2f below %.2f, using the default demand pattern", hd.Confidence, g.cfg.ConfidenceThreshold),
			map[string]any{"day": day, "hour": hour, "confidence": hd.Confidence, "threshold": g.cfg.ConfidenceThreshold})
	}
	return g.heuristicStaff(hour)
}

// heuristicStaff is the default demand pattern: lunch and evening peaks need
// two staff, other business hours one, closed hours zero.
func (g *Generator) heuristicStaff(hour int) int {
	switch {
	case (hour >= 12 && hour <= 14) || (hour >= 18 && hour <= 21):
		return max(2, g.cfg.MinStaffPerHour)
	case hour >= 6 && hour <= 23:
		return max(1, g.cfg.MinStaffPerHour)
	default:
		return 0
	}
}
