// Package observability records dashboard operation outcomes. Recorders are
// safe for concurrent use by request goroutines.
package observability

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"time"
)

// MetricsRecorder captures the outcome and latency of a named operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) Observe(context.Context, string, bool, time.Duration) {}

// Backend names accepted by New.
const (
	BackendPrometheus = "prometheus"
	BackendExpvar     = "expvar"
	BackendNone       = "none"
)

// New builds the recorder for backend together with the handler serving its
// metrics. The handler is nil for BackendNone.
func New(backend string) (MetricsRecorder, http.Handler, error) {
	switch backend {
	case BackendPrometheus, "":
		rec, err := NewPrometheusRecorder(nil)
		if err != nil {
			return nil, nil, err
		}
		return rec, rec.Handler(), nil
	case BackendExpvar:
		return NewExpvarRecorder(""), expvar.Handler(), nil
	case BackendNone:
		return NoopRecorder{}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown metrics backend %q", backend)
	}
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

var (
	_ MetricsRecorder = (*PrometheusRecorder)(nil)
	_ MetricsRecorder = (*ExpvarRecorder)(nil)
	_ MetricsRecorder = NoopRecorder{}
)
