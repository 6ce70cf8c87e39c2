package benchmarks

// Zone is a named classification band relative to configured thresholds.
type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneOrange Zone = "orange"
	ZoneRed    Zone = "red"
	// ZoneBelowTarget is the fallback for values under the green band
	// but still above the red floor.
	ZoneBelowTarget Zone = "below target"
	// ZoneNoData marks a missing (null) input value.
	ZoneNoData Zone = "no data"
	// ZoneInsufficientData marks an undefined ACWR ratio (chronic load 0).
	ZoneInsufficientData Zone = "insufficient data"
)

// Classify maps a raw metric value to its traffic light zone. The
// classification is total over the real line: bands are checked in
// precedence order (green, yellow, orange), values beyond the red
// bounds are red, everything else falls below target. A nil value
// classifies as "no data".
func (b Benchmark) Classify(value *float64) Zone {
	if value == nil {
		return ZoneNoData
	}
	v := *value
	switch {
	case b.Green.Contains(v):
		return ZoneGreen
	case b.Yellow.Contains(v):
		return ZoneYellow
	case b.Orange.Contains(v):
		return ZoneOrange
	case v < b.RedLow || v > b.RedHigh:
		return ZoneRed
	default:
		return ZoneBelowTarget
	}
}

// ACWR status labels shown alongside the zone.
const (
	StatusOptimal        = "Optimal"
	StatusUndertraining  = "Undertraining"
	StatusHighLoad       = "High Load"
	StatusDetrainingRisk = "Detraining Risk"
	StatusInjuryRisk     = "Injury Risk"
	StatusNoData         = "No data"
)

// Classify maps an acute:chronic ratio to a zone and a status label.
// A nil ratio (undefined, chronic load 0) yields "insufficient data".
func (z ACWRZones) Classify(ratio *float64) (Zone, string) {
	if ratio == nil {
		return ZoneInsufficientData, StatusNoData
	}
	r := *ratio
	switch {
	case z.Green.Contains(r):
		return ZoneGreen, StatusOptimal
	case z.YellowLow.Contains(r):
		return ZoneYellow, StatusUndertraining
	case z.YellowHigh.Contains(r):
		return ZoneYellow, StatusHighLoad
	case r < z.YellowLow.Min:
		return ZoneRed, StatusDetrainingRisk
	default:
		return ZoneRed, StatusInjuryRisk
	}
}
