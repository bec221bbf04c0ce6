// Package source resolves a dataset location to a Loader that reads the launch
// table exactly once at startup.
//
// Supported locations:
//
//	spacex_launch_dash.csv, ./data/x.csv, file:///abs/x.csv   local CSV file
//	s3://bucket/key.csv                                        CSV object in S3 / MinIO
//	sqlite:///path/launches.db, sqlite:launches.db             SQLite table
//	postgres://user@host/db, postgresql://...                  PostgreSQL table
package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"launchdash/internal/blob"
	"launchdash/internal/infra/table"
	"launchdash/internal/infra/table/postgres"
	"launchdash/internal/infra/table/sqlite"
	"launchdash/internal/launch"
)

// Kind names the backend a location resolved to.
type Kind string

const (
	KindFile     Kind = "file"
	KindS3       Kind = "s3"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Options configures backend specific parameters.
type Options struct {
	// Table is the SQL table read by sqlite and postgres locations.
	Table string
	// S3 configures the client for s3:// locations; Bucket is taken from the location.
	S3 blob.S3Config
}

// Loader reads the dataset from its location.
type Loader interface {
	Load(ctx context.Context) (*launch.Dataset, error)
	Kind() Kind
	Location() string
}

// Seams swapped by tests.
var (
	openStore    = blob.Open
	loadSQLite   = sqlite.Load
	loadPostgres = postgres.Load
)

// Open parses location and returns the matching Loader. No I/O happens until Load.
func Open(location string, opts Options) (Loader, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &launch.DataLoadError{Reason: "dataset location is empty"}
	}
	if opts.Table == "" {
		opts.Table = table.DefaultTable
	}
	scheme, rest, ok := strings.Cut(location, ":")
	if !ok || !isScheme(scheme) {
		return &fileLoader{path: location}, nil
	}
	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(location)
		if err != nil || u.Path == "" {
			return nil, &launch.DataLoadError{Source: location, Reason: "invalid file location", Err: err}
		}
		return &fileLoader{path: filepath.FromSlash(u.Path)}, nil
	case "s3":
		u, err := url.Parse(location)
		if err != nil {
			return nil, &launch.DataLoadError{Source: location, Reason: "invalid s3 location", Err: err}
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, &launch.DataLoadError{Source: location, Reason: "s3 location must be s3://bucket/key"}
		}
		cfg := opts.S3
		cfg.Bucket = u.Host
		return &s3Loader{location: location, cfg: cfg, key: key}, nil
	case "sqlite":
		path := strings.TrimPrefix(rest, "//")
		if path == "" {
			return nil, &launch.DataLoadError{Source: location, Reason: "sqlite location has no path"}
		}
		return &sqlLoader{kind: KindSQLite, location: location, target: path, table: opts.Table}, nil
	case "postgres", "postgresql":
		return &sqlLoader{kind: KindPostgres, location: postgres.Redact(location), target: location, table: opts.Table}, nil
	default:
		return nil, &launch.DataLoadError{Source: location, Reason: fmt.Sprintf("unsupported dataset scheme %q", scheme)}
	}
}

// Load is shorthand for Open followed by Loader.Load.
func Load(ctx context.Context, location string, opts Options) (*launch.Dataset, error) {
	l, err := Open(location, opts)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx)
}

// FromBlob returns a Loader reading key from an already constructed store.
func FromBlob(store blob.Store, key string) Loader {
	return &blobLoader{store: store, key: key, location: string(store.Driver()) + ":" + key}
}

type blobLoader struct {
	store    blob.Store
	key      string
	location string
}

func (l *blobLoader) Kind() Kind {
	if l.store.Driver() == blob.DriverS3 {
		return KindS3
	}
	return KindFile
}

func (l *blobLoader) Location() string { return l.location }

func (l *blobLoader) Load(ctx context.Context) (*launch.Dataset, error) {
	_, rc, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, launch.AsDataLoadError(l.location, "open dataset", err)
	}
	defer func() { _ = rc.Close() }()
	ds, err := launch.Load(rc, l.location)
	if err != nil {
		return nil, launch.AsDataLoadError(l.location, "read dataset", err)
	}
	return ds, nil
}

type fileLoader struct{ path string }

func (l *fileLoader) Kind() Kind       { return KindFile }
func (l *fileLoader) Location() string { return l.path }

func (l *fileLoader) Load(ctx context.Context) (*launch.Dataset, error) {
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return nil, &launch.DataLoadError{Source: l.path, Reason: "resolve path", Err: err}
	}
	store, err := openStore(ctx, blob.DriverFilesystem, blob.Options{Root: filepath.Dir(abs)})
	if err != nil {
		return nil, &launch.DataLoadError{Source: l.path, Reason: "open dataset directory", Err: err}
	}
	bl := &blobLoader{store: store, key: filepath.Base(abs), location: l.path}
	return bl.Load(ctx)
}

type s3Loader struct {
	location string
	cfg      blob.S3Config
	key      string
}

func (l *s3Loader) Kind() Kind       { return KindS3 }
func (l *s3Loader) Location() string { return l.location }

func (l *s3Loader) Load(ctx context.Context) (*launch.Dataset, error) {
	store, err := openStore(ctx, blob.DriverS3, blob.Options{S3: l.cfg})
	if err != nil {
		return nil, &launch.DataLoadError{Source: l.location, Reason: "configure s3 client", Err: err}
	}
	bl := &blobLoader{store: store, key: l.key, location: l.location}
	return bl.Load(ctx)
}

type sqlLoader struct {
	kind     Kind
	location string
	target   string
	table    string
}

func (l *sqlLoader) Kind() Kind       { return l.kind }
func (l *sqlLoader) Location() string { return l.location }

func (l *sqlLoader) Load(ctx context.Context) (*launch.Dataset, error) {
	load := loadSQLite
	if l.kind == KindPostgres {
		load = loadPostgres
	}
	records, err := load(ctx, l.target, l.table)
	if err != nil {
		return nil, launch.AsDataLoadError(l.location, "read launch table", err)
	}
	return launch.New(l.location, records)
}

// isScheme reports whether s looks like a URL scheme. Single letters are
// Windows drive letters, not schemes.
func isScheme(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

