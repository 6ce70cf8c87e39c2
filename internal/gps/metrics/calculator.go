// Package metrics derives per-session benchmark views from canonical
// session records.
package metrics

import (
	"github.com/sourcedsport/gpsmetrics/internal/gps"
	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
)

// Value is one session metric next to its benchmark-relative derivations.
type Value struct {
	Metric string  `json:"metric"`
	Raw    float64 `json:"raw"`
	// PctOfMatchAvg is raw / match_avg, nil when match_avg is 0.
	PctOfMatchAvg *float64        `json:"pctOfMatchAvg"`
	Zone          benchmarks.Zone `json:"zone"`
}

// Compute builds the metric view of a single session against the
// configured benchmarks. The input session is not mutated; metrics the
// session has no value for (unknown canonical field) are skipped.
func Compute(session gps.Session, cfg benchmarks.Config) []Value {
	values := make([]Value, 0, len(cfg.Metrics))
	for _, name := range cfg.MetricNames() {
		raw, ok := session.MetricValue(name)
		if !ok {
			continue
		}
		bench := cfg.Metrics[name]
		values = append(values, Value{
			Metric:        name,
			Raw:           raw,
			PctOfMatchAvg: PctOfMatchAvg(raw, bench),
			Zone:          bench.Classify(&raw),
		})
	}
	return values
}

// PctOfMatchAvg guards the division: a zero match average means the
// percentage is undefined, reported as nil rather than Inf or NaN.
func PctOfMatchAvg(raw float64, bench benchmarks.Benchmark) *float64 {
	if bench.MatchAvg == 0 {
		return nil
	}
	pct := raw / bench.MatchAvg
	return &pct
}
