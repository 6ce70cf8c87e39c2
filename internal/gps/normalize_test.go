package gps_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
)

func TestNormalize_VendorHeaderEquivalence(t *testing.T) {
	// same session expressed through three vendor header sets
	generic := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)", "HSR Distance (m)", "Player Load (AU)"},
		Rows: []gps.RawRow{{
			"Player":             "Jansen",
			"Date":               "2024-03-01",
			"Total Distance (m)": "6500",
			"HSR Distance (m)":   "1800",
			"Player Load (AU)":   "640.5",
		}},
	}
	statsports := &gps.Table{
		Headers: []string{"Player Name", "Date", "Total Distance", "High Speed Running", "Dynamic Stress Load"},
		Rows: []gps.RawRow{{
			"Player Name":         "Jansen",
			"Date":                "2024-03-01",
			"Total Distance":      "6500",
			"High Speed Running":  "1800",
			"Dynamic Stress Load": "640.5",
		}},
	}
	catapult := &gps.Table{
		Headers: []string{"Athlete Name", "Date", "Total Distance", "Velocity Band 5 Total Distance", "Total Player Load"},
		Rows: []gps.RawRow{{
			"Athlete Name":                   "Jansen",
			"Date":                           "2024-03-01",
			"Total Distance":                 "6500",
			"Velocity Band 5 Total Distance": "1800",
			"Total Player Load":              "640.5",
		}},
	}

	var results []gps.Session
	for _, table := range []*gps.Table{generic, statsports, catapult} {
		res, err := gps.Normalize(table, gps.DefaultSynonyms())
		require.NoError(t, err)
		require.Len(t, res.Sessions, 1)
		require.Zero(t, res.SkippedRows)
		results = append(results, res.Sessions[0])
	}

	expected := gps.Session{
		Athlete:       "Jansen",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalDistance: 6500,
		HSRDistance:   1800,
		PlayerLoad:    640.5,
	}
	for _, session := range results {
		assert.Equal(t, expected, session)
	}
}

func TestNormalize_HeaderMatchingIsCaseAndWhitespaceInsensitive(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"  player NAME ", "DATE", "total   distance (M)"},
		Rows: []gps.RawRow{{
			"  player NAME ":       "Smith",
			"DATE":                 "2024-03-01",
			"total   distance (M)": "7200",
		}},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "Smith", res.Sessions[0].Athlete)
	assert.Equal(t, float64(7200), res.Sessions[0].TotalDistance)
}

func TestNormalize_MandatoryFieldsMissing(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"Player", "HSR Distance (m)"},
		Rows: []gps.RawRow{{
			"Player":           "Jansen",
			"HSR Distance (m)": "1800",
		}},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.Error(t, err)
	require.Nil(t, res)

	schemaErr, ok := err.(*gps.SchemaError)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{gps.FieldDate, gps.FieldTotalDistance}, schemaErr.MissingFields)
	assert.Contains(t, schemaErr.Error(), "mandatory fields unresolvable")
}

func TestNormalize_UnrecognizedColumnsDroppedWithWarning(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)", "Shirt Color"},
		Rows: []gps.RawRow{{
			"Player":             "Jansen",
			"Date":               "2024-03-01",
			"Total Distance (m)": "6500",
			"Shirt Color":        "orange",
		}},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Shirt Color")
}

func TestNormalize_FirstMatchingHeaderWins(t *testing.T) {
	// both headers resolve to the athlete identifier, the first one
	// in file order must win
	table := &gps.Table{
		Headers: []string{"Player", "Athlete Name", "Date", "Total Distance (m)"},
		Rows: []gps.RawRow{{
			"Player":             "Jansen",
			"Athlete Name":       "Somebody Else",
			"Date":               "2024-03-01",
			"Total Distance (m)": "6500",
		}},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "Jansen", res.Sessions[0].Athlete)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Athlete Name")
}

func TestNormalize_RowLevelErrorsSkippedAndCounted(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)"},
		Rows: []gps.RawRow{
			{"Player": "Jansen", "Date": "2024-03-01", "Total Distance (m)": "6500"},
			{"Player": "Smith", "Date": "not-a-date", "Total Distance (m)": "7000"},
			{"Player": "Keller", "Date": "2024-03-01", "Total Distance (m)": "lots"},
			{"Player": "", "Date": "2024-03-01", "Total Distance (m)": "6100"},
		},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "Jansen", res.Sessions[0].Athlete)
	assert.Equal(t, 3, res.SkippedRows)
	require.Len(t, res.Warnings, 3)
	assert.Contains(t, res.Warnings[0], "not-a-date")
	assert.Contains(t, res.Warnings[1], "lots")
}

func TestNormalize_OptionalFieldsDefaultToZero(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)", "Sprint Distance (m)"},
		Rows: []gps.RawRow{{
			"Player":              "Jansen",
			"Date":                "2024-03-01",
			"Total Distance (m)":  "6500",
			"Sprint Distance (m)": "",
		}},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)

	s := res.Sessions[0]
	assert.Zero(t, s.SprintDistance)
	assert.Zero(t, s.HSRDistance)
	assert.Zero(t, s.PlayerLoad)
	assert.Zero(t, s.MaxSpeed)
}

func TestNormalize_LenientDateFormats(t *testing.T) {
	table := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)"},
		Rows: []gps.RawRow{
			{"Player": "A", "Date": "2024-03-01", "Total Distance (m)": "1"},
			{"Player": "B", "Date": "2024-03-01 10:30:00", "Total Distance (m)": "2"},
			{"Player": "C", "Date": "01/03/2024", "Total Distance (m)": "3"},
		},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	require.Len(t, res.Sessions, 3)

	expected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range res.Sessions {
		assert.Equal(t, expected, s.Date)
	}
}

func TestNormalize_DuplicateAthleteDateRowsKept(t *testing.T) {
	// two sessions on the same day are a valid input, merging them
	// is the aggregator's job
	table := &gps.Table{
		Headers: []string{"Player", "Date", "Total Distance (m)"},
		Rows: []gps.RawRow{
			{"Player": "Jansen", "Date": "2024-03-01", "Total Distance (m)": "3000"},
			{"Player": "Jansen", "Date": "2024-03-01", "Total Distance (m)": "2500"},
		},
	}

	res, err := gps.Normalize(table, gps.DefaultSynonyms())
	require.NoError(t, err)
	assert.Len(t, res.Sessions, 2)
}
