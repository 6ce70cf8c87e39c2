// Package acwr computes rolling acute:chronic workload ratios over
// per-athlete daily load series.
package acwr

import (
	"time"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
)

// Point is the ACWR value for one athlete on one date.
type Point struct {
	Date        time.Time `json:"date"`
	AcuteLoad   float64   `json:"acuteLoad"`
	ChronicLoad float64   `json:"chronicLoad"`
	// Ratio is acute / chronic, nil when the chronic load is 0.
	Ratio  *float64        `json:"ratio"`
	Zone   benchmarks.Zone `json:"zone"`
	Status string          `json:"status"`
	// LowConfidence marks dates with fewer than a full chronic window
	// of preceding history.
	LowConfidence bool `json:"lowConfidence"`
}

// DailyLoads sums player load per athlete per calendar day.
func DailyLoads(sessions []gps.Session) map[string]map[time.Time]float64 {
	loads := make(map[string]map[time.Time]float64)
	for _, s := range sessions {
		if loads[s.Athlete] == nil {
			loads[s.Athlete] = make(map[time.Time]float64)
		}
		loads[s.Athlete][s.Day()] += s.PlayerLoad
	}
	return loads
}

// Series computes one ACWR point per day in [from, to], inclusive.
//
// A day with no recorded load contributes 0 to the rolling windows: a
// missed session reduces chronic load, it does not shrink the window.
// Days earlier than a full chronic window after the first recorded load
// are flagged low-confidence rather than suppressed. The result is a
// pure function of the load series, the window sizes and the supplied
// date range.
func Series(loads map[time.Time]float64, from, to time.Time, zones benchmarks.ACWRZones) []Point {
	from = midnight(from)
	to = midnight(to)
	if to.Before(from) {
		return nil
	}

	firstLoad, haveLoads := earliestDay(loads)

	var points []Point
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		acute := windowMean(loads, d, zones.AcuteWindowDays)
		chronic := windowMean(loads, d, zones.ChronicWindowDays)

		point := Point{
			Date:        d,
			AcuteLoad:   acute,
			ChronicLoad: chronic,
		}

		historyDays := 0
		if haveLoads && !d.Before(firstLoad) {
			historyDays = int(d.Sub(firstLoad).Hours()/24) + 1
		}
		point.LowConfidence = historyDays < zones.ChronicWindowDays

		if chronic != 0 {
			ratio := acute / chronic
			point.Ratio = &ratio
		}
		point.Zone, point.Status = zones.Classify(point.Ratio)

		points = append(points, point)
	}

	return points
}

// windowMean is the mean load over the trailing window ending at day d,
// inclusive of d. Absent days count as load 0.
func windowMean(loads map[time.Time]float64, d time.Time, windowDays int) float64 {
	var sum float64
	for i := 0; i < windowDays; i++ {
		sum += loads[d.AddDate(0, 0, -i)]
	}
	return sum / float64(windowDays)
}

func earliestDay(loads map[time.Time]float64) (time.Time, bool) {
	var first time.Time
	found := false
	for day := range loads {
		if !found || day.Before(first) {
			first = day
			found = true
		}
	}
	return first, found
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
