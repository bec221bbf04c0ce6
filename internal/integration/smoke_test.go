package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"launchdash/internal/adapters/httpapi"
	"launchdash/internal/blob"
	"launchdash/internal/dashboard"
	"launchdash/internal/launch"
	"launchdash/internal/source"
	"launchdash/pkg/chartapi"
)

const launchCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,1,525.0,F9 v1.0  B0004,v1.0
17,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT
40,VAFB SLC-4E,0,9600.0,F9 B5 B1046.1,B5
`

// TestSourcesServeIdenticalCharts loads the same launches through every
// supported source and checks that the HTTP surface answers identically.
func TestSourcesServeIdenticalCharts(t *testing.T) {
	ctx := context.Background()

	variants := []struct {
		name string
		open func(t *testing.T) source.Loader
	}{
		{
			name: "file",
			open: func(t *testing.T) source.Loader {
				path := filepath.Join(t.TempDir(), "spacex_launch_dash.csv")
				if err := os.WriteFile(path, []byte(launchCSV), 0o600); err != nil {
					t.Fatalf("write csv: %v", err)
				}
				l, err := source.Open(path, source.Options{})
				if err != nil {
					t.Fatalf("open: %v", err)
				}
				return l
			},
		},
		{
			name: "memory-blob",
			open: func(t *testing.T) source.Loader {
				store := blob.NewMemory()
				if _, err := store.Put(ctx, "launches.csv", bytes.NewBufferString(launchCSV), "text/csv"); err != nil {
					t.Fatalf("put: %v", err)
				}
				return source.FromBlob(store, "launches.csv")
			},
		},
		{
			name: "s3-mock",
			open: func(_ *testing.T) source.Loader {
				store := blob.NewMockS3ForTests("launch-data", map[string][]byte{"dash/launches.csv": []byte(launchCSV)})
				return source.FromBlob(store, "dash/launches.csv")
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) source.Loader {
				path := filepath.Join(t.TempDir(), "launches.db")
				db, err := sql.Open("sqlite", path)
				if err != nil {
					t.Fatalf("open sqlite: %v", err)
				}
				defer func() { _ = db.Close() }()
				for _, stmt := range []string{
					`CREATE TABLE spacex_launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER, booster_version_category TEXT)`,
					`INSERT INTO spacex_launches VALUES
						('CCAFS LC-40', 0, 0, 'v1.0'),
						('CCAFS LC-40', 525, 1, 'v1.0'),
						('KSC LC-39A', 2490, 1, 'FT'),
						('VAFB SLC-4E', 9600, 0, 'B5')`,
				} {
					if _, err := db.Exec(stmt); err != nil {
						t.Fatalf("exec: %v", err)
					}
				}
				l, err := source.Open("sqlite:"+path, source.Options{})
				if err != nil {
					t.Fatalf("open: %v", err)
				}
				return l
			},
		},
	}

	wantPie := []chartapi.Slice{{Label: "CCAFS LC-40", Value: 1}, {Label: "KSC LC-39A", Value: 1}, {Label: "VAFB SLC-4E", Value: 0}}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			ds, err := v.open(t).Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if ds.Len() != 4 || ds.MinPayload() != 0 || ds.MaxPayload() != 9600 {
				t.Fatalf("unexpected dataset %d records %v..%v", ds.Len(), ds.MinPayload(), ds.MaxPayload())
			}
			h := httpapi.NewHandler(dashboard.New(ds), httpapi.Options{})

			var pie struct {
				Chart chartapi.Pie `json:"chart"`
			}
			getJSON(t, h, "/api/v1/charts/pie", &pie)
			if diff := cmp.Diff(wantPie, pie.Chart.Slices); diff != "" {
				t.Fatalf("pie mismatch (-want +got):\n%s", diff)
			}

			var launches struct {
				Launches []launch.Record `json:"launches"`
			}
			getJSON(t, h, "/api/v1/launches?site=CCAFS+LC-40&low=500&high=10000", &launches)
			want := []launch.Record{{LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, Class: 1, BoosterCategory: "v1.0"}}
			if diff := cmp.Diff(want, launches.Launches); diff != "" {
				t.Fatalf("launches mismatch (-want +got):\n%s", diff)
			}

			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/charts/scatter?format=png", nil))
			if resp.Code != http.StatusOK || resp.Header().Get("Content-Type") != "image/png" {
				t.Fatalf("scatter png: status %d type %q", resp.Code, resp.Header().Get("Content-Type"))
			}
		})
	}
}

func getJSON(t *testing.T, h http.Handler, target string, dst any) {
	t.Helper()
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d: %s", target, resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
}
