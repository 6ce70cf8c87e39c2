// Package report composes the pipeline outputs into the structure the
// presentation layer consumes.
package report

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
	"github.com/sourcedsport/gpsmetrics/internal/gps/acwr"
	"github.com/sourcedsport/gpsmetrics/internal/gps/aggregate"
	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
	"github.com/sourcedsport/gpsmetrics/internal/gps/metrics"
)

type Report struct {
	From             time.Time                   `json:"from"`
	To               time.Time                   `json:"to"`
	Athletes         []string                    `json:"athletes"`
	TeamSummary      TeamSummary                 `json:"teamSummary"`
	WeeklyTrends     []MetricTrend               `json:"weeklyTrends"`
	WeeklyAggregates []aggregate.WeeklyAggregate `json:"weeklyAggregates"`
	ACWR             []AthleteACWR               `json:"acwr"`
	Comparison       []AthleteComparison         `json:"comparison"`
	Export           []ExportRow                 `json:"export"`
}

// TeamSummary covers the most recent session date in the dataset.
type MetricSummary struct {
	Metric         string          `json:"metric"`
	Unit           string          `json:"unit"`
	Mean           float64         `json:"mean"`
	Median         float64         `json:"median"`
	Zone           benchmarks.Zone `json:"zone"`
	TrainingTarget float64         `json:"trainingTarget"`
}

type ACWRSummary struct {
	Optimal int      `json:"optimal"`
	Caution int      `json:"caution"`
	Risk    int      `json:"risk"`
	NoData  int      `json:"noData"`
	TeamAvg *float64 `json:"teamAvg"`
}

type TeamSummary struct {
	Date         time.Time       `json:"date"`
	Sessions     int             `json:"sessions"`
	Metrics      []MetricSummary `json:"metrics"`
	PeakMaxSpeed float64         `json:"peakMaxSpeed"`
	ACWR         ACWRSummary     `json:"acwr"`
}

// MetricTrend is the team-wide weekly sum of one metric.
type TrendPoint struct {
	Period aggregate.Period `json:"period"`
	Label  string           `json:"label"`
	Value  float64          `json:"value"`
}

type MetricTrend struct {
	Metric string       `json:"metric"`
	Points []TrendPoint `json:"points"`
}

// AthleteACWR is one athlete's ratio series; Latest is the last point.
type AthleteACWR struct {
	Athlete string       `json:"athlete"`
	Latest  acwr.Point   `json:"latest"`
	Series  []acwr.Point `json:"series"`
}

// AthleteComparison holds per-athlete metric means normalized to the
// squad maximum, for radar style comparison.
type AthleteComparison struct {
	Athlete  string             `json:"athlete"`
	Sessions int                `json:"sessions"`
	Means    map[string]float64 `json:"means"`
	PctOfMax map[string]float64 `json:"pctOfMax"`
}

// ExportRow mirrors one normalized session plus its derived columns.
type ExportRow struct {
	Session gps.Session     `json:"session"`
	Metrics []metrics.Value `json:"metrics"`
}

// Assemble runs the pipeline over canonical sessions in dependency
// order and packages the result. It is a pure function: identical
// input yields identical output, ordering included.
func Assemble(sessions []gps.Session, cfg benchmarks.Config) *Report {
	r := &Report{}
	if len(sessions) == 0 {
		return r
	}

	r.From, r.To = dateRange(sessions)
	r.Athletes = athleteNames(sessions)

	weekly := aggregate.Weekly(sessions)
	r.WeeklyAggregates = weekly
	r.WeeklyTrends = weeklyTrends(weekly, cfg)

	dailyLoads := acwr.DailyLoads(sessions)
	for _, athlete := range r.Athletes {
		series := acwr.Series(dailyLoads[athlete], r.From, r.To, cfg.ACWR)
		r.ACWR = append(r.ACWR, AthleteACWR{
			Athlete: athlete,
			Latest:  series[len(series)-1],
			Series:  series,
		})
	}

	r.TeamSummary = teamSummary(sessions, r.ACWR, cfg)
	r.Comparison = comparison(sessions, r.Athletes, cfg)
	r.Export = exportTable(sessions, cfg)

	return r
}

func dateRange(sessions []gps.Session) (from, to time.Time) {
	from, to = sessions[0].Day(), sessions[0].Day()
	for _, s := range sessions[1:] {
		day := s.Day()
		if day.Before(from) {
			from = day
		}
		if day.After(to) {
			to = day
		}
	}
	return from, to
}

func athleteNames(sessions []gps.Session) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range sessions {
		if !seen[s.Athlete] {
			seen[s.Athlete] = true
			names = append(names, s.Athlete)
		}
	}
	sort.Strings(names)
	return names
}

func teamSummary(sessions []gps.Session, athleteACWR []AthleteACWR, cfg benchmarks.Config) TeamSummary {
	_, latest := dateRange(sessions)

	var latestSessions []gps.Session
	for _, s := range sessions {
		if s.Day().Equal(latest) {
			latestSessions = append(latestSessions, s)
		}
	}

	summary := TeamSummary{
		Date:     latest,
		Sessions: len(latestSessions),
	}

	for _, name := range cfg.MetricNames() {
		values := make([]float64, 0, len(latestSessions))
		for _, s := range latestSessions {
			if v, ok := s.MetricValue(name); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		sort.Float64s(values)
		mean := stat.Mean(values, nil)
		bench := cfg.Metrics[name]
		summary.Metrics = append(summary.Metrics, MetricSummary{
			Metric:         name,
			Unit:           bench.Unit,
			Mean:           mean,
			Median:         stat.Quantile(0.5, stat.Empirical, values, nil),
			Zone:           bench.Classify(&mean),
			TrainingTarget: bench.TrainingTarget(),
		})
	}

	for _, s := range latestSessions {
		if s.MaxSpeed > summary.PeakMaxSpeed {
			summary.PeakMaxSpeed = s.MaxSpeed
		}
	}

	summary.ACWR = acwrSummary(athleteACWR)
	return summary
}

func acwrSummary(athleteACWR []AthleteACWR) ACWRSummary {
	var summary ACWRSummary
	var ratios []float64
	for _, a := range athleteACWR {
		latest := a.Latest
		if latest.Ratio == nil {
			summary.NoData++
			continue
		}
		ratios = append(ratios, *latest.Ratio)
		switch latest.Zone {
		case benchmarks.ZoneGreen:
			summary.Optimal++
		case benchmarks.ZoneYellow:
			summary.Caution++
		default:
			summary.Risk++
		}
	}
	if len(ratios) > 0 {
		avg := stat.Mean(ratios, nil)
		summary.TeamAvg = &avg
	}
	return summary
}

// trendMetrics are the weekly summed metrics charted by presentation.
var trendMetrics = []string{
	gps.FieldTotalDistance,
	gps.FieldHSRDistance,
	gps.FieldSprintDistance,
	gps.FieldAccelCount,
	gps.FieldDecelCount,
	gps.FieldPlayerLoad,
}

func weeklyTrends(weekly []aggregate.WeeklyAggregate, cfg benchmarks.Config) []MetricTrend {
	period2sums := make(map[aggregate.Period]map[string]float64)
	var periods []aggregate.Period
	for _, agg := range weekly {
		sums, ok := period2sums[agg.Period]
		if !ok {
			sums = make(map[string]float64)
			period2sums[agg.Period] = sums
			periods = append(periods, agg.Period)
		}
		sums[gps.FieldTotalDistance] += agg.TotalDistance
		sums[gps.FieldHSRDistance] += agg.HSRDistance
		sums[gps.FieldSprintDistance] += agg.SprintDistance
		sums[gps.FieldAccelCount] += agg.AccelCount
		sums[gps.FieldDecelCount] += agg.DecelCount
		sums[gps.FieldPlayerLoad] += agg.PlayerLoad
	}

	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Week < periods[j].Week
	})

	var trends []MetricTrend
	for _, metric := range trendMetrics {
		if _, configured := cfg.Metrics[metric]; !configured {
			continue
		}
		trend := MetricTrend{Metric: metric}
		for _, p := range periods {
			trend.Points = append(trend.Points, TrendPoint{
				Period: p,
				Label:  p.Label(),
				Value:  period2sums[p][metric],
			})
		}
		trends = append(trends, trend)
	}
	return trends
}

func comparison(sessions []gps.Session, athletes []string, cfg benchmarks.Config) []AthleteComparison {
	metricNames := cfg.MetricNames()

	athlete2sessions := make(map[string][]gps.Session)
	for _, s := range sessions {
		athlete2sessions[s.Athlete] = append(athlete2sessions[s.Athlete], s)
	}

	comparisons := make([]AthleteComparison, 0, len(athletes))
	maxMeans := make(map[string]float64)
	for _, athlete := range athletes {
		own := athlete2sessions[athlete]
		means := make(map[string]float64, len(metricNames))
		for _, name := range metricNames {
			var sum float64
			for _, s := range own {
				v, _ := s.MetricValue(name)
				sum += v
			}
			mean := sum / float64(len(own))
			means[name] = mean
			if mean > maxMeans[name] {
				maxMeans[name] = mean
			}
		}
		comparisons = append(comparisons, AthleteComparison{
			Athlete:  athlete,
			Sessions: len(own),
			Means:    means,
		})
	}

	for i := range comparisons {
		pct := make(map[string]float64, len(metricNames))
		for _, name := range metricNames {
			if maxMeans[name] > 0 {
				pct[name] = comparisons[i].Means[name] / maxMeans[name] * 100
			}
		}
		comparisons[i].PctOfMax = pct
	}

	return comparisons
}

func exportTable(sessions []gps.Session, cfg benchmarks.Config) []ExportRow {
	ordered := make([]gps.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Athlete < ordered[j].Athlete
	})

	rows := make([]ExportRow, 0, len(ordered))
	for _, s := range ordered {
		rows = append(rows, ExportRow{
			Session: s,
			Metrics: metrics.Compute(s, cfg),
		})
	}
	return rows
}
