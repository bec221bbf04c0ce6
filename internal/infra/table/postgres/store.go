// Package postgres reads the launch table from a PostgreSQL database through
// the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"net/url"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"launchdash/internal/infra/table"
	"launchdash/internal/launch"
)

const defaultDriver = "pgx"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Load connects with dsn, reads tableName, and closes the connection pool.
func Load(ctx context.Context, dsn, tableName string) ([]launch.Record, error) {
	source := Redact(dsn)
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "open postgres", Err: err}
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return nil, &launch.DataLoadError{Source: source, Reason: "ping postgres", Err: err}
	}
	return table.ReadRecords(ctx, db, source, tableName)
}

// Redact strips the password from URL style DSNs so they can be logged.
func Redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
