package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
)

var exportSessionHeaders = []string{
	gps.FieldAthlete,
	gps.FieldDate,
	gps.FieldPosition,
	gps.FieldSessionType,
	gps.FieldDurationMin,
	gps.FieldTotalDistance,
	gps.FieldHSRDistance,
	gps.FieldSprintDistance,
	gps.FieldAccelCount,
	gps.FieldDecelCount,
	gps.FieldPlayerLoad,
	gps.FieldMaxSpeed,
}

// WriteCSV renders the export table back to CSV: canonical columns
// followed by the derived percentage and zone columns per configured
// metric.
func WriteCSV(w io.Writer, rows []ExportRow, cfg benchmarks.Config) error {
	metricNames := cfg.MetricNames()

	headers := make([]string, 0, len(exportSessionHeaders)+2*len(metricNames))
	headers = append(headers, exportSessionHeaders...)
	for _, name := range metricNames {
		headers = append(headers, name+"_pct_match_avg", name+"_zone")
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, row := range rows {
		record := sessionRecord(row.Session)

		metric2value := make(map[string]struct {
			pct  *float64
			zone benchmarks.Zone
		}, len(row.Metrics))
		for _, m := range row.Metrics {
			metric2value[m.Metric] = struct {
				pct  *float64
				zone benchmarks.Zone
			}{m.PctOfMatchAvg, m.Zone}
		}

		for _, name := range metricNames {
			v, ok := metric2value[name]
			if !ok {
				record = append(record, "", string(benchmarks.ZoneNoData))
				continue
			}
			pct := ""
			if v.pct != nil {
				pct = strconv.FormatFloat(*v.pct, 'f', 4, 64)
			}
			record = append(record, pct, string(v.zone))
		}

		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("write export record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func sessionRecord(s gps.Session) []string {
	return []string{
		s.Athlete,
		s.Date.Format("2006-01-02"),
		s.Position,
		s.SessionType,
		formatFloat(s.DurationMin),
		formatFloat(s.TotalDistance),
		formatFloat(s.HSRDistance),
		formatFloat(s.SprintDistance),
		formatFloat(s.AccelCount),
		formatFloat(s.DecelCount),
		formatFloat(s.PlayerLoad),
		formatFloat(s.MaxSpeed),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
