// Package table reads launch records from a SQL table through database/sql.
// Driver specific packages (sqlite, postgres) open the connection and delegate
// the query and row decoding to ReadRecords.
package table

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"launchdash/internal/launch"
)

// DefaultTable is the table name used when none is configured.
const DefaultTable = "spacex_launches"

// Column names of the launch table.
const (
	ColumnLaunchSite      = "launch_site"
	ColumnPayloadMass     = "payload_mass_kg"
	ColumnClass           = "class"
	ColumnBoosterCategory = "booster_version_category"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SelectStatement returns the query reading the launch columns from name.
// name may be schema qualified; anything but plain identifiers is rejected.
func SelectStatement(name string) (string, error) {
	if name == "" {
		name = DefaultTable
	}
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s",
		ColumnLaunchSite, ColumnPayloadMass, ColumnClass, ColumnBoosterCategory, name), nil
}

// ReadRecords runs the launch query against db and decodes every row. Errors
// are reported as *launch.DataLoadError carrying the offending row.
func ReadRecords(ctx context.Context, db *sql.DB, source, name string) ([]launch.Record, error) {
	query, err := SelectStatement(name)
	if err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "configure table", Err: err}
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "query launch table", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var records []launch.Record
	for row := 1; rows.Next(); row++ {
		var (
			rec   launch.Record
			class float64
		)
		if err := rows.Scan(&rec.LaunchSite, &rec.PayloadMassKg, &class, &rec.BoosterCategory); err != nil {
			return nil, &launch.DataLoadError{Source: source, Row: row, Reason: "scan launch row", Err: err}
		}
		rec.Class = int(class)
		if float64(rec.Class) != class {
			return nil, &launch.DataLoadError{Source: source, Row: row, Column: ColumnClass, Reason: "class must be 0 or 1"}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "iterate launch rows", Err: err}
	}
	return records, nil
}
