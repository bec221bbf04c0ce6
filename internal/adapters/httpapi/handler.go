// Package httpapi exposes the dashboard page, chart specifications, rendered
// chart images and filtered launch records over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"launchdash/internal/launch"
	"launchdash/internal/layout"
	"launchdash/internal/render"
	"launchdash/internal/selector"
	"launchdash/pkg/chartapi"
)

// Dashboard is the query surface the handler serves.
type Dashboard interface {
	Layout() layout.Layout
	Pie(ctx context.Context, site string) (chartapi.Pie, error)
	Scatter(ctx context.Context, site string, rng selector.PayloadRange) (chartapi.Scatter, error)
	Records(ctx context.Context, site string, rng selector.PayloadRange) ([]launch.Record, error)
}

// Options tunes the handler. Zero values select defaults.
type Options struct {
	Render render.Options
	Logger *zap.Logger
	Now    func() time.Time
}

// Handler routes dashboard requests.
type Handler struct {
	Dashboard Dashboard
	render    render.Options
	logger    *zap.Logger
	now       func() time.Time
	static    http.Handler
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(d Dashboard, opts Options) *Handler {
	h := &Handler{
		Dashboard: d,
		render:    opts.Render,
		logger:    opts.Logger,
		now:       opts.Now,
		static:    http.StripPrefix("/static/", http.FileServer(http.FS(layout.Static()))),
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Dashboard == nil {
		writeError(w, http.StatusInternalServerError, "dashboard not configured")
		return
	}

	if strings.HasPrefix(r.URL.Path, "/static/") {
		if !allowGet(w, r) {
			return
		}
		h.static.ServeHTTP(w, r)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch path {
	case "":
		if allowGet(w, r) {
			h.handlePage(w, r)
		}
	case "/api/v1/layout":
		if allowGet(w, r) {
			writeJSON(w, http.StatusOK, map[string]any{"layout": h.Dashboard.Layout()})
		}
	case "/api/v1/charts/pie":
		if allowGet(w, r) {
			h.handlePie(w, r)
		}
	case "/api/v1/charts/scatter":
		if allowGet(w, r) {
			h.handleScatter(w, r)
		}
	case "/api/v1/launches":
		if allowGet(w, r) {
			h.handleLaunches(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (h *Handler) handlePage(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := layout.RenderPage(&buf, h.Dashboard.Layout()); err != nil {
		h.logger.Error("render page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render page failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

var chartFormats = []chartapi.Format{chartapi.FormatJSON, chartapi.FormatPNG, chartapi.FormatSVG}

func (h *Handler) handlePie(w http.ResponseWriter, r *http.Request) {
	format := negotiateFormat(r, chartFormats)
	if format == "" {
		writeError(w, http.StatusNotAcceptable, "requested format not supported")
		return
	}
	pie, err := h.Dashboard.Pie(r.Context(), siteParam(r))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	if format == chartapi.FormatJSON {
		writeJSON(w, http.StatusOK, map[string]any{"chart": pie})
		return
	}
	h.writeImage(w, format, func(out io.Writer) error {
		return render.Pie(out, pie, format, h.render)
	})
}

func (h *Handler) handleScatter(w http.ResponseWriter, r *http.Request) {
	format := negotiateFormat(r, chartFormats)
	if format == "" {
		writeError(w, http.StatusNotAcceptable, "requested format not supported")
		return
	}
	rng, err := h.rangeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scatter, err := h.Dashboard.Scatter(r.Context(), siteParam(r), rng)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	if format == chartapi.FormatJSON {
		writeJSON(w, http.StatusOK, map[string]any{"chart": scatter})
		return
	}
	h.writeImage(w, format, func(out io.Writer) error {
		return render.Scatter(out, scatter, format, h.render)
	})
}

type launchesResponse struct {
	Site         string                `json:"site"`
	PayloadRange selector.PayloadRange `json:"payload_range"`
	Count        int                   `json:"count"`
	Launches     []launch.Record       `json:"launches"`
}

func (h *Handler) handleLaunches(w http.ResponseWriter, r *http.Request) {
	format := negotiateFormat(r, []chartapi.Format{chartapi.FormatJSON, chartapi.FormatCSV})
	if format == "" {
		writeError(w, http.StatusNotAcceptable, "requested format not supported")
		return
	}
	rng, err := h.rangeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	site := siteParam(r)
	records, err := h.Dashboard.Records(r.Context(), site, rng)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	if format == chartapi.FormatCSV {
		h.streamCSV(w, records)
		return
	}
	if records == nil {
		records = []launch.Record{}
	}
	writeJSON(w, http.StatusOK, launchesResponse{Site: site, PayloadRange: rng, Count: len(records), Launches: records})
}

func siteParam(r *http.Request) string {
	q := r.URL.Query()
	if !q.Has("site") {
		return selector.AllSites
	}
	return q.Get("site")
}

// rangeParam reads low/high; an absent bound takes the slider's initial value.
func (h *Handler) rangeParam(r *http.Request) (selector.PayloadRange, error) {
	rng := h.Dashboard.Layout().DefaultRange()
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"low", &rng.Low}, {"high", &rng.High}} {
		if !q.Has(p.name) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(q.Get(p.name)), 64)
		if err != nil {
			return selector.PayloadRange{}, fmt.Errorf("%s must be a number", p.name)
		}
		*p.dst = v
	}
	return rng, nil
}

func (h *Handler) writeQueryError(w http.ResponseWriter, err error) {
	var cv *selector.ContractViolation
	if errors.As(err, &cv) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": cv.Error(), "field": cv.Field})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	h.logger.Error("dashboard query", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeImage(w http.ResponseWriter, format chartapi.Format, draw func(io.Writer) error) {
	contentType, err := render.ContentType(format)
	if err != nil {
		writeError(w, http.StatusNotAcceptable, "requested format not supported")
		return
	}
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		if errors.Is(err, render.ErrUnsupportedFormat) {
			writeError(w, http.StatusNotAcceptable, "requested format not supported")
			return
		}
		h.logger.Error("render chart", zap.String("format", string(format)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render chart failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func negotiateFormat(r *http.Request, supported []chartapi.Format) chartapi.Format {
	wanted := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if wanted == "" {
		accept := r.Header.Get("Accept")
		switch {
		case strings.Contains(accept, "text/csv"):
			wanted = string(chartapi.FormatCSV)
		case strings.Contains(accept, "image/png"):
			wanted = string(chartapi.FormatPNG)
		case strings.Contains(accept, "image/svg+xml"):
			wanted = string(chartapi.FormatSVG)
		default:
			wanted = string(chartapi.FormatJSON)
		}
	}
	for _, candidate := range supported {
		if string(candidate) == wanted {
			return candidate
		}
	}
	return ""
}

var csvHeader = launch.RequiredColumns

func (h *Handler) streamCSV(w http.ResponseWriter, records []launch.Record) {
	filename := fmt.Sprintf("launches-%s.csv", h.now().UTC().Format("20060102T150405Z"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return
	}
	for _, rec := range records {
		row := []string{
			rec.LaunchSite,
			strconv.FormatFloat(rec.PayloadMassKg, 'f', -1, 64),
			strconv.Itoa(rec.Class),
			rec.BoosterCategory,
		}
		if err := writer.Write(row); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
