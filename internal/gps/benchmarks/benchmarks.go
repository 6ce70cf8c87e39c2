package benchmarks

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// Band is a closed value range [Min, Max].
type Band struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Benchmark holds the evidence-based reference values for one metric:
// the match average, the training target as a fraction of it, and the
// banded thresholds used by the traffic light classification.
type Benchmark struct {
	Unit              string  `toml:"unit" json:"unit"`
	MatchAvg          float64 `toml:"match_avg" json:"matchAvg"`
	TrainingTargetPct float64 `toml:"training_target_pct" json:"trainingTargetPct"`
	Green             Band    `toml:"green" json:"green"`
	Yellow            Band    `toml:"yellow" json:"yellow"`
	Orange            Band    `toml:"orange" json:"orange"`
	RedHigh           float64 `toml:"red_high" json:"redHigh"`
	RedLow            float64 `toml:"red_low" json:"redLow"`
}

// TrainingTarget is the absolute training-day target value.
func (b Benchmark) TrainingTarget() float64 {
	return b.MatchAvg * b.TrainingTargetPct
}

// ACWRZones defines the rolling windows and the named bands over the
// acute:chronic ratio domain. Ratios below YellowLow or above
// YellowHigh are red.
type ACWRZones struct {
	AcuteWindowDays   int  `toml:"acute_window_days" json:"acuteWindowDays"`
	ChronicWindowDays int  `toml:"chronic_window_days" json:"chronicWindowDays"`
	Green             Band `toml:"green" json:"green"`
	YellowLow         Band `toml:"yellow_low" json:"yellowLow"`
	YellowHigh        Band `toml:"yellow_high" json:"yellowHigh"`
}

// Config is the full, immutable domain configuration. Reconfiguration
// means loading a new value, never mutating a shared one.
type Config struct {
	Metrics map[string]Benchmark `toml:"metrics" json:"metrics"`
	ACWR    ACWRZones            `toml:"acwr" json:"acwr"`
}

// MetricNames returns the configured metric names, sorted.
func (c Config) MetricNames() []string {
	names := make([]string, 0, len(c.Metrics))
	for name := range c.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a TOML benchmark configuration and validates it before
// any row processing can happen.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode benchmarks config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid benchmarks config: %w", err)
	}
	return cfg, nil
}

// Validate rejects malformed definitions: inverted bands, overlapping
// or gapped thresholds, nonsense windows.
func (c Config) Validate() error {
	for _, name := range c.MetricNames() {
		if err := c.Metrics[name].validate(); err != nil {
			return fmt.Errorf("metric [%s]: %w", name, err)
		}
	}
	return c.ACWR.validate()
}

func (b Benchmark) validate() error {
	if b.MatchAvg < 0 {
		return fmt.Errorf("match_avg must not be negative, got %.2f", b.MatchAvg)
	}
	if b.TrainingTargetPct <= 0 || b.TrainingTargetPct > 1 {
		return fmt.Errorf("training_target_pct must be in (0, 1], got %.2f", b.TrainingTargetPct)
	}
	for _, band := range []struct {
		name string
		b    Band
	}{
		{"green", b.Green},
		{"yellow", b.Yellow},
		{"orange", b.Orange},
	} {
		if band.b.Min >= band.b.Max {
			return fmt.Errorf("%s band inverted: [%.2f, %.2f]", band.name, band.b.Min, band.b.Max)
		}
	}
	switch {
	case b.RedLow > b.Green.Min:
		return fmt.Errorf("red_low %.2f above green band start %.2f", b.RedLow, b.Green.Min)
	case b.Green.Max > b.Yellow.Min:
		return fmt.Errorf("green and yellow bands overlap")
	case b.Yellow.Max > b.Orange.Min:
		return fmt.Errorf("yellow and orange bands overlap")
	case b.Orange.Max > b.RedHigh:
		return fmt.Errorf("orange band exceeds red_high %.2f", b.RedHigh)
	}
	return nil
}

func (z ACWRZones) validate() error {
	if z.AcuteWindowDays <= 0 || z.ChronicWindowDays <= 0 {
		return fmt.Errorf("acwr windows must be positive, got acute=%d chronic=%d",
			z.AcuteWindowDays, z.ChronicWindowDays)
	}
	if z.AcuteWindowDays >= z.ChronicWindowDays {
		return fmt.Errorf("acute window %d must be shorter than chronic window %d",
			z.AcuteWindowDays, z.ChronicWindowDays)
	}
	if z.YellowLow.Min >= z.YellowLow.Max || z.Green.Min >= z.Green.Max || z.YellowHigh.Min >= z.YellowHigh.Max {
		return fmt.Errorf("inverted acwr zone band")
	}
	// zones must partition the bounded ratio domain with no gaps
	if z.YellowLow.Max != z.Green.Min || z.Green.Max != z.YellowHigh.Min {
		return fmt.Errorf("acwr zones gapped or overlapping: yellow_low=[%.2f, %.2f] green=[%.2f, %.2f] yellow_high=[%.2f, %.2f]",
			z.YellowLow.Min, z.YellowLow.Max, z.Green.Min, z.Green.Max, z.YellowHigh.Min, z.YellowHigh.Max)
	}
	return nil
}

// Default returns the field hockey benchmarks (Buchheit & Laursen 2013,
// Jennings et al. 2012) used when no config file is supplied.
func Default() Config {
	return Config{
		Metrics: map[string]Benchmark{
			"total_distance": {
				Unit: "m", MatchAvg: 9500, TrainingTargetPct: 0.70,
				Green:  Band{6000, 8000},
				Yellow: Band{8000, 9500},
				Orange: Band{9500, 11000},
				RedHigh: 11000, RedLow: 5000,
			},
			"hsr_distance": {
				Unit: "m", MatchAvg: 1800, TrainingTargetPct: 0.65,
				Green:  Band{1000, 1500},
				Yellow: Band{1500, 1800},
				Orange: Band{1800, 2200},
				RedHigh: 2200, RedLow: 800,
			},
			"sprint_distance": {
				Unit: "m", MatchAvg: 450, TrainingTargetPct: 0.60,
				Green:  Band{200, 350},
				Yellow: Band{350, 450},
				Orange: Band{450, 600},
				RedHigh: 600, RedLow: 150,
			},
			"accel_count": {
				Unit: "n", MatchAvg: 85, TrainingTargetPct: 0.70,
				Green:  Band{50, 70},
				Yellow: Band{70, 85},
				Orange: Band{85, 100},
				RedHigh: 100, RedLow: 40,
			},
			"decel_count": {
				Unit: "n", MatchAvg: 80, TrainingTargetPct: 0.70,
				Green:  Band{45, 65},
				Yellow: Band{65, 80},
				Orange: Band{80, 95},
				RedHigh: 95, RedLow: 35,
			},
			"player_load": {
				Unit: "AU", MatchAvg: 950, TrainingTargetPct: 0.70,
				Green:  Band{500, 750},
				Yellow: Band{750, 900},
				Orange: Band{900, 1100},
				RedHigh: 1100, RedLow: 400,
			},
		},
		ACWR: ACWRZones{
			AcuteWindowDays:   7,
			ChronicWindowDays: 28,
			Green:             Band{0.8, 1.3},
			YellowLow:         Band{0.6, 0.8},
			YellowHigh:        Band{1.3, 1.5},
		},
	}
}
