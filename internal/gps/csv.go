package gps

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is tabular input as it came off the wire: the header row in
// file order plus the records keyed by those headers.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// ReadCSV reads a comma-separated export with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	// vendor exports sometimes carry ragged records, leave the
	// row-level validation to the normalizer
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.New("empty input, no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &Table{Headers: headers}
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(RawRow, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
