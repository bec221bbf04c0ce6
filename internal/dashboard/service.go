// Package dashboard binds the loaded dataset, its page layout and the chart
// selectors into the service the HTTP adapter calls.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"launchdash/internal/launch"
	"launchdash/internal/layout"
	"launchdash/internal/observability"
	"launchdash/internal/selector"
	"launchdash/pkg/chartapi"
)

// Operation names reported to the metrics recorder.
const (
	OpPie     = "chart_pie"
	OpScatter = "chart_scatter"
	OpRecords = "records"
)

// Clock provides the current time for latency measurement.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type serviceOptions struct {
	clock   Clock
	logger  *zap.Logger
	metrics observability.MetricsRecorder
}

// Option customises a Service.
type Option func(*serviceOptions)

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:   systemClock{},
		logger:  zap.NewNop(),
		metrics: observability.NoopRecorder{},
	}
}

// WithClock overrides the clock used to time operations.
func WithClock(c Clock) Option {
	return func(o *serviceOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger for operation traces.
func WithLogger(l *zap.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the recorder observing every operation.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// Service answers chart and record queries against one immutable dataset.
// It is safe for concurrent use.
type Service struct {
	dataset *launch.Dataset
	layout  layout.Layout
	clock   Clock
	logger  *zap.Logger
	metrics observability.MetricsRecorder
}

// New constructs the service for ds and prebuilds its layout.
func New(ds *launch.Dataset, opts ...Option) *Service {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Service{
		dataset: ds,
		layout:  layout.Build(ds),
		clock:   o.clock,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Dataset returns the dataset the service was built with.
func (s *Service) Dataset() *launch.Dataset { return s.dataset }

// Layout returns the page layout.
func (s *Service) Layout() layout.Layout { return s.layout }

// Pie returns the success pie for site.
func (s *Service) Pie(ctx context.Context, site string) (chartapi.Pie, error) {
	var pie chartapi.Pie
	err := s.run(ctx, OpPie, site, nil, func() error {
		var err error
		pie, err = selector.PieChart(s.dataset, site)
		return err
	})
	return pie, err
}

// Scatter returns the payload/outcome scatter for site within rng.
func (s *Service) Scatter(ctx context.Context, site string, rng selector.PayloadRange) (chartapi.Scatter, error) {
	var scatter chartapi.Scatter
	err := s.run(ctx, OpScatter, site, &rng, func() error {
		var err error
		scatter, err = selector.ScatterChart(s.dataset, site, rng)
		return err
	})
	return scatter, err
}

// Records returns the launches matching site and rng in load order.
func (s *Service) Records(ctx context.Context, site string, rng selector.PayloadRange) ([]launch.Record, error) {
	var records []launch.Record
	err := s.run(ctx, OpRecords, site, &rng, func() error {
		var err error
		records, err = selector.FilterRecords(s.dataset, site, rng)
		return err
	})
	return records, err
}

func (s *Service) run(ctx context.Context, op, site string, rng *selector.PayloadRange, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := s.clock.Now()
	err := fn()
	elapsed := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, op, err == nil, elapsed)

	fields := []zap.Field{zap.String("operation", op), zap.String("site", site), zap.Duration("duration", elapsed)}
	if rng != nil {
		fields = append(fields, zap.Float64("payload_low", rng.Low), zap.Float64("payload_high", rng.High))
	}
	switch {
	case err == nil:
		s.logger.Debug("dashboard operation", fields...)
	case selector.IsContractViolation(err):
		s.logger.Warn("dashboard operation rejected", append(fields, zap.Error(err))...)
	default:
		s.logger.Error("dashboard operation failed", append(fields, zap.Error(err))...)
	}
	return err
}
