// Package aggregate rolls per-session records into per-athlete,
// per-period summaries.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
)

// Period identifies one aggregation bucket, by default an ISO week.
type Period struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

func (p Period) Label() string {
	return fmt.Sprintf("%d-W%02d", p.Year, p.Week)
}

func (p Period) before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Week < other.Week
}

// PeriodFunc maps a date to its containing period.
type PeriodFunc func(time.Time) Period

// ByISOWeek is the default period function.
func ByISOWeek(t time.Time) Period {
	year, week := t.ISOWeek()
	return Period{Year: year, Week: week}
}

// WeeklyAggregate is one athlete's summed workload for one period.
// Distances, counts and load are summed over the period's sessions;
// AvgPlayerLoad is the per-session mean and MaxSpeed the period peak.
type WeeklyAggregate struct {
	Athlete        string  `json:"athlete"`
	Period         Period  `json:"period"`
	Sessions       int     `json:"sessions"`
	TotalDistance  float64 `json:"totalDistance"`
	HSRDistance    float64 `json:"hsrDistance"`
	SprintDistance float64 `json:"sprintDistance"`
	AccelCount     float64 `json:"accelCount"`
	DecelCount     float64 `json:"decelCount"`
	PlayerLoad     float64 `json:"playerLoad"`
	AvgPlayerLoad  float64 `json:"avgPlayerLoad"`
	MaxSpeed       float64 `json:"maxSpeed"`
}

// Weekly groups sessions by (athlete, ISO week).
func Weekly(sessions []gps.Session) []WeeklyAggregate {
	return Aggregate(sessions, ByISOWeek)
}

// Aggregate groups sessions by (athlete, period). Periods without any
// session never appear; callers needing a dense series fill the gaps
// themselves. Output is sorted by athlete, then period.
func Aggregate(sessions []gps.Session, periodFn PeriodFunc) []WeeklyAggregate {
	type key struct {
		athlete string
		period  Period
	}

	buckets := make(map[key]*WeeklyAggregate)
	for _, s := range sessions {
		k := key{athlete: s.Athlete, period: periodFn(s.Date)}
		agg, ok := buckets[k]
		if !ok {
			agg = &WeeklyAggregate{Athlete: s.Athlete, Period: k.period}
			buckets[k] = agg
		}
		agg.Sessions++
		agg.TotalDistance += s.TotalDistance
		agg.HSRDistance += s.HSRDistance
		agg.SprintDistance += s.SprintDistance
		agg.AccelCount += s.AccelCount
		agg.DecelCount += s.DecelCount
		agg.PlayerLoad += s.PlayerLoad
		if s.MaxSpeed > agg.MaxSpeed {
			agg.MaxSpeed = s.MaxSpeed
		}
	}

	aggregates := make([]WeeklyAggregate, 0, len(buckets))
	for _, agg := range buckets {
		agg.AvgPlayerLoad = agg.PlayerLoad / float64(agg.Sessions)
		aggregates = append(aggregates, *agg)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Athlete != aggregates[j].Athlete {
			return aggregates[i].Athlete < aggregates[j].Athlete
		}
		return aggregates[i].Period.before(aggregates[j].Period)
	})

	return aggregates
}
