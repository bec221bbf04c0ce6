package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const launchCSV = `Launch Site,Payload Mass (kg),class,Booster Version Category
CCAFS LC-40,500,0,v1.0
KSC LC-39A,3000,1,FT
`

func setEnv(t *testing.T, dataset string) {
	t.Helper()
	t.Setenv("LAUNCHDASH_DATASET", dataset)
	t.Setenv("LAUNCHDASH_HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("LAUNCHDASH_LOG_LEVEL", "error")
	t.Setenv("LAUNCHDASH_METRICS", "none")
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spacex_launch_dash.csv")
	if err := os.WriteFile(path, []byte(launchCSV), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	setEnv(t, writeDataset(t))
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	var stderr bytes.Buffer
	if code := run(ctx, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}
}

func TestRunFailsOnMissingDataset(t *testing.T) {
	setEnv(t, filepath.Join(t.TempDir(), "missing.csv"))
	var stderr bytes.Buffer
	if code := run(context.Background(), &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	setEnv(t, writeDataset(t))
	t.Setenv("LAUNCHDASH_LOG_FORMAT", "xml")
	var stderr bytes.Buffer
	if code := run(context.Background(), &stderr); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "LAUNCHDASH_LOG_FORMAT") {
		t.Fatalf("stderr should name the bad variable: %q", stderr.String())
	}
}
