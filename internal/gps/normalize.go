package gps

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RawRow is one CSV record, keyed by the raw (vendor) column header.
type RawRow map[string]string

// SchemaError means the dataset as a whole is unusable: one or more
// mandatory fields could not be resolved from the column headers.
type SchemaError struct {
	MissingFields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("mandatory fields unresolvable: %s", strings.Join(e.MissingFields, ", "))
}

// NormalizeResult carries the canonical sessions plus all diagnostics
// accumulated on the way. Nothing is logged internally.
type NormalizeResult struct {
	Sessions    []Session `json:"sessions"`
	Warnings    []string  `json:"warnings,omitempty"`
	SkippedRows int       `json:"skippedRows"`
}

var mandatoryFields = []string{FieldAthlete, FieldDate, FieldTotalDistance}

// Normalize maps vendor-named rows onto the canonical schema.
//
// Header matching is case and whitespace insensitive; the first raw
// header resolving to a canonical field wins, later duplicates and
// unrecognized headers are dropped with a warning. Rows with an
// unparseable date or a non-numeric value in a numeric field are
// excluded, counted and reported in warnings. It fails only when the
// mandatory fields (athlete, date, total distance) cannot be resolved
// from the headers at all.
func Normalize(table *Table, synonyms SynonymTable) (*NormalizeResult, error) {
	field2header, warnings := resolveHeaders(table.Headers, synonyms)

	var missing []string
	for _, field := range mandatoryFields {
		if _, ok := field2header[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{MissingFields: missing}
	}

	res := &NormalizeResult{Warnings: warnings}
	for i, row := range table.Rows {
		session, rowErr := normalizeRow(row, field2header)
		if rowErr != nil {
			res.SkippedRows++
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d skipped: %s", i+1, rowErr))
			continue
		}
		res.Sessions = append(res.Sessions, session)
	}

	return res, nil
}

func normalizeRow(row RawRow, field2header map[string]string) (Session, error) {
	var s Session

	s.Athlete = strings.TrimSpace(row[field2header[FieldAthlete]])
	if s.Athlete == "" {
		return Session{}, fmt.Errorf("empty athlete identifier")
	}

	rawDate := row[field2header[FieldDate]]
	date, ok := parseDate(rawDate)
	if !ok {
		return Session{}, fmt.Errorf("unparseable date [%s]", rawDate)
	}
	s.Date = date

	if h, ok := field2header[FieldPosition]; ok {
		s.Position = strings.TrimSpace(row[h])
	}
	if h, ok := field2header[FieldSessionType]; ok {
		s.SessionType = strings.TrimSpace(row[h])
	}

	for field, dst := range map[string]*float64{
		FieldDurationMin:    &s.DurationMin,
		FieldTotalDistance:  &s.TotalDistance,
		FieldHSRDistance:    &s.HSRDistance,
		FieldSprintDistance: &s.SprintDistance,
		FieldAccelCount:     &s.AccelCount,
		FieldDecelCount:     &s.DecelCount,
		FieldPlayerLoad:     &s.PlayerLoad,
		FieldMaxSpeed:       &s.MaxSpeed,
	} {
		header, ok := field2header[field]
		if !ok {
			continue // unresolved optional numeric field, stays 0
		}
		raw := strings.TrimSpace(row[header])
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return Session{}, fmt.Errorf("non-numeric value [%s] in column [%s]", raw, header)
		}
		*dst = v
	}

	return s, nil
}

// resolveHeaders maps each canonical field to the raw header serving it.
func resolveHeaders(headers []string, synonyms SynonymTable) (map[string]string, []string) {
	canon2field := make(map[string]string)
	for field, rawNames := range synonyms {
		for _, raw := range rawNames {
			canon2field[canonKey(raw)] = field
		}
	}

	field2header := make(map[string]string)
	var warnings []string
	for _, header := range headers {
		field, known := canon2field[canonKey(header)]
		if !known {
			warnings = append(warnings, fmt.Sprintf("unrecognized column [%s] ignored", header))
			continue
		}
		if _, taken := field2header[field]; taken {
			warnings = append(warnings, fmt.Sprintf("column [%s] ignored, [%s] already mapped", header, field))
			continue
		}
		field2header[field] = header
	}

	return field2header, warnings
}

// NewTable builds a Table from bare rows, with headers in sorted order
// so that normalization stays deterministic without a CSV header row.
func NewTable(rows []RawRow) *Table {
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for header := range row {
			if !seen[header] {
				seen[header] = true
				headers = append(headers, header)
			}
		}
	}
	sort.Strings(headers)
	return &Table{Headers: headers, Rows: rows}
}
