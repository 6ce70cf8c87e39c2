package gps_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
)

func TestReadCSV(t *testing.T) {
	input := `Player,Date,Total Distance (m)
Jansen,2024-03-01,6500
Smith,2024-03-02,7100
`
	table, err := gps.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Player", "Date", "Total Distance (m)"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Jansen", table.Rows[0]["Player"])
	assert.Equal(t, "7100", table.Rows[1]["Total Distance (m)"])
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := gps.ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadCSV_RaggedRecords(t *testing.T) {
	// a record shorter than the header row yields missing cells, not
	// a read error
	input := `Player,Date,Total Distance (m)
Jansen,2024-03-01
`
	table, err := gps.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["Total Distance (m)"])
}

func TestNewTable_CollectsHeadersDeterministically(t *testing.T) {
	rows := []gps.RawRow{
		{"Player": "A", "Date": "2024-03-01"},
		{"Total Distance (m)": "5000", "Player": "B"},
	}
	table := gps.NewTable(rows)
	assert.Equal(t, []string{"Date", "Player", "Total Distance (m)"}, table.Headers)
	assert.Len(t, table.Rows, 2)
}
