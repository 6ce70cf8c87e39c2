package gps

import (
	"strings"
	"time"
)

// Canonical field names, independent of the vendor naming in the uploaded CSV.
const (
	FieldAthlete        = "athlete"
	FieldDate           = "date"
	FieldPosition       = "position"
	FieldSessionType    = "session_type"
	FieldDurationMin    = "duration_min"
	FieldTotalDistance  = "total_distance"
	FieldHSRDistance    = "hsr_distance"
	FieldSprintDistance = "sprint_distance"
	FieldAccelCount     = "accel_count"
	FieldDecelCount     = "decel_count"
	FieldPlayerLoad     = "player_load"
	FieldMaxSpeed       = "max_speed"
)

// Session is one athlete's GPS-derived workload for one date.
// (Athlete, Date) is not unique - multiple sessions per day are
// summed or averaged at aggregation time.
type Session struct {
	Athlete        string    `json:"athlete"`
	Date           time.Time `json:"date"`
	Position       string    `json:"position,omitempty"`
	SessionType    string    `json:"sessionType,omitempty"`
	DurationMin    float64   `json:"durationMin"`
	TotalDistance  float64   `json:"totalDistance"`
	HSRDistance    float64   `json:"hsrDistance"`
	SprintDistance float64   `json:"sprintDistance"`
	AccelCount     float64   `json:"accelCount"`
	DecelCount     float64   `json:"decelCount"`
	PlayerLoad     float64   `json:"playerLoad"`
	MaxSpeed       float64   `json:"maxSpeed"`
}

// Day returns the session date truncated to UTC midnight.
func (s Session) Day() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// MetricValue returns the session value for a canonical numeric field.
func (s Session) MetricValue(field string) (float64, bool) {
	switch field {
	case FieldDurationMin:
		return s.DurationMin, true
	case FieldTotalDistance:
		return s.TotalDistance, true
	case FieldHSRDistance:
		return s.HSRDistance, true
	case FieldSprintDistance:
		return s.SprintDistance, true
	case FieldAccelCount:
		return s.AccelCount, true
	case FieldDecelCount:
		return s.DecelCount, true
	case FieldPlayerLoad:
		return s.PlayerLoad, true
	case FieldMaxSpeed:
		return s.MaxSpeed, true
	default:
		return 0, false
	}
}

// SynonymTable maps a canonical field to the set of raw column headers
// accepted for it. Matching is case and whitespace insensitive, and the
// first raw header claiming a canonical field wins.
type SynonymTable map[string][]string

// DefaultSynonyms covers the generic export format plus the STATSports
// and Catapult vendor header sets.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		FieldAthlete: {
			"Player", "Player Name", "Athlete", "Athlete Name",
		},
		FieldDate: {
			"Date", "Session Date",
		},
		FieldPosition: {
			"Position", "Pos",
		},
		FieldSessionType: {
			"Session Type", "Activity Type",
		},
		FieldDurationMin: {
			"Duration (min)", "Duration", "Session Duration",
		},
		FieldTotalDistance: {
			"Total Distance (m)", "Total Distance", "Distance",
		},
		FieldHSRDistance: {
			"HSR Distance (m)", "HSR Distance", "High Speed Running",
			"Velocity Band 5 Total Distance",
		},
		FieldSprintDistance: {
			"Sprint Distance (m)", "Sprint Distance",
			"Velocity Band 6 Total Distance",
		},
		FieldAccelCount: {
			"Accelerations", "Accels",
			"Acceleration Band 3 Total Effort Count",
		},
		FieldDecelCount: {
			"Decelerations", "Decels",
			"Deceleration Band 3 Total Effort Count",
		},
		FieldPlayerLoad: {
			"Player Load (AU)", "Player Load", "Total Player Load",
			"Dynamic Stress Load",
		},
		FieldMaxSpeed: {
			"Max Speed (km/h)", "Max Speed", "Maximum Velocity",
		},
	}
}

// canonKey folds a raw header for synonym matching: lowercase,
// surrounding whitespace stripped, inner whitespace collapsed.
func canonKey(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02.01.2006",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
