package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names required in the launch CSV header.
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns lists the header names Load insists on, in canonical order.
var RequiredColumns = []string{ColumnLaunchSite, ColumnPayloadMass, ColumnClass, ColumnBoosterCategory}

const utf8BOM = "\ufeff"

// Load decodes a launch CSV (header row first) into a Dataset. Columns may
// appear in any order and extra columns are ignored.
func Load(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataLoadError{Source: source, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &DataLoadError{Source: source, Reason: "read header", Err: err}
	}
	index, err := columnIndex(header)
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Source = source
		}
		return nil, err
	}

	var records []Record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Source: source, Row: row, Reason: "malformed csv row", Err: err}
		}
		rec, rowErr := decodeRow(fields, index, row)
		if rowErr != nil {
			rowErr.Source = source
			return nil, rowErr
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &DataLoadError{Source: source, Reason: "dataset has no launch records"}
	}
	return build(source, records), nil
}

type columns struct {
	site, payload, class, booster int
}

func columnIndex(header []string) (columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columns{}, &DataLoadError{
			Reason: fmt.Sprintf("missing required columns %s", strings.Join(quoteAll(missing), ", ")),
		}
	}
	return columns{
		site:    positions[ColumnLaunchSite],
		payload: positions[ColumnPayloadMass],
		class:   positions[ColumnClass],
		booster: positions[ColumnBoosterCategory],
	}, nil
}

func decodeRow(fields []string, idx columns, row int) (Record, *DataLoadError) {
	field := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := Record{
		LaunchSite:      field(idx.site),
		BoosterCategory: field(idx.booster),
	}

	payload, err := strconv.ParseFloat(field(idx.payload), 64)
	if err != nil {
		return Record{}, &DataLoadError{Row: row, Column: ColumnPayloadMass, Reason: "payload mass is not a number", Err: err}
	}
	rec.PayloadMassKg = payload

	class, err := parseClass(field(idx.class))
	if err != nil {
		return Record{}, &DataLoadError{Row: row, Column: ColumnClass, Reason: errClassRange.Error(), Err: err}
	}
	rec.Class = class

	if err := validateRecord(rec); err != nil {
		column := ""
		switch {
		case errors.Is(err, errEmptySite):
			column = ColumnLaunchSite
		case errors.Is(err, errPayloadNegative), errors.Is(err, errPayloadNotFinite):
			column = ColumnPayloadMass
		}
		return Record{}, &DataLoadError{Row: row, Column: column, Reason: err.Error()}
	}
	return rec, nil
}

// parseClass accepts "0"/"1" as well as float spellings such as "1.0".
func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, fmt.Errorf("got %q", raw)
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Quote(v)
	}
	return out
}
