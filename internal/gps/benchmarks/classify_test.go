package benchmarks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
)

func ptr(v float64) *float64 { return &v }

func TestBenchmarkClassify(t *testing.T) {
	bench := benchmarks.Default().Metrics["total_distance"]
	// red_low 5000, green 6000-8000, yellow 8000-9500,
	// orange 9500-11000, red_high 11000

	for name, tc := range map[string]struct {
		value    *float64
		expected benchmarks.Zone
	}{
		"nil value":           {nil, benchmarks.ZoneNoData},
		"green mid":           {ptr(7000), benchmarks.ZoneGreen},
		"green lower bound":   {ptr(6000), benchmarks.ZoneGreen},
		"green upper bound":   {ptr(8000), benchmarks.ZoneGreen},
		"yellow":              {ptr(9000), benchmarks.ZoneYellow},
		"orange":              {ptr(10000), benchmarks.ZoneOrange},
		"above red high":      {ptr(12000), benchmarks.ZoneRed},
		"below red low":       {ptr(4000), benchmarks.ZoneRed},
		"negative":            {ptr(-100), benchmarks.ZoneRed},
		"below target gap":    {ptr(5500), benchmarks.ZoneBelowTarget},
		"red low bound":       {ptr(5000), benchmarks.ZoneBelowTarget},
		"zero":                {ptr(0), benchmarks.ZoneRed},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bench.Classify(tc.value))
		})
	}
}

func TestACWRClassify(t *testing.T) {
	zones := benchmarks.Default().ACWR

	for name, tc := range map[string]struct {
		ratio          *float64
		expectedZone   benchmarks.Zone
		expectedStatus string
	}{
		"nil ratio":        {nil, benchmarks.ZoneInsufficientData, benchmarks.StatusNoData},
		"optimal":          {ptr(1.0), benchmarks.ZoneGreen, benchmarks.StatusOptimal},
		"optimal low edge": {ptr(0.8), benchmarks.ZoneGreen, benchmarks.StatusOptimal},
		"optimal top edge": {ptr(1.3), benchmarks.ZoneGreen, benchmarks.StatusOptimal},
		"undertraining":    {ptr(0.7), benchmarks.ZoneYellow, benchmarks.StatusUndertraining},
		"high load":        {ptr(1.4), benchmarks.ZoneYellow, benchmarks.StatusHighLoad},
		"high load edge":   {ptr(1.5), benchmarks.ZoneYellow, benchmarks.StatusHighLoad},
		"detraining":       {ptr(0.3), benchmarks.ZoneRed, benchmarks.StatusDetrainingRisk},
		"injury risk":      {ptr(2.14), benchmarks.ZoneRed, benchmarks.StatusInjuryRisk},
		"zero ratio":       {ptr(0), benchmarks.ZoneRed, benchmarks.StatusDetrainingRisk},
	} {
		t.Run(name, func(t *testing.T) {
			zone, status := zones.Classify(tc.ratio)
			assert.Equal(t, tc.expectedZone, zone)
			assert.Equal(t, tc.expectedStatus, status)
		})
	}
}
