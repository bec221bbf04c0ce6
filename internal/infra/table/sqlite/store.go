// Package sqlite reads the launch table from a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"launchdash/internal/infra/table"
	"launchdash/internal/launch"
)

const driverName = "sqlite"

// Load opens the database at path read-only, reads tableName, and closes the
// connection. A missing file is an error rather than an empty new database.
func Load(ctx context.Context, path, tableName string) ([]launch.Record, error) {
	source := "sqlite:" + path
	if _, err := os.Stat(path); err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "open database", Err: err}
	}
	db, err := sql.Open(driverName, fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "open database", Err: err}
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "open database", Err: err}
	}
	return table.ReadRecords(ctx, db, source, tableName)
}
