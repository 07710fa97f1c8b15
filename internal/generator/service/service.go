package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dummygen/internal/fields"
	"dummygen/internal/generator/metrics"
	"dummygen/internal/generator/models"
	dErrors "dummygen/pkg/domain-errors"
	"dummygen/pkg/requestcontext"
)

const tracerName = "dummygen/internal/generator/service"

// GenerateRequest describes one batch.
type GenerateRequest struct {
	Schema models.Schema
	Count  int
	// Seed makes the batch reproducible. Nil draws a fresh random seed.
	Seed *int64
	// Strict overrides the service default for constraint binding failures.
	Strict *bool
}

// Result is a generated batch.
type Result struct {
	Records []models.Record
	// Fallbacks counts values generated without arguments because their
	// constraints could not be bound.
	Fallbacks int
}

// FieldError reports which schema entry failed a batch.
type FieldError struct {
	Field     string
	FieldType string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (%s): %v", e.Field, e.FieldType, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Service generates record batches from schemas.
type Service struct {
	registry *fields.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	strict   bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithStrictConstraints sets the default for requests that do not choose.
func WithStrictConstraints(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// New constructs a Service over registry.
func New(registry *fields.Registry, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, errors.New("field registry is required")
	}
	s := &Service{
		registry: registry,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate produces req.Count records. Records are generated in order and
// fields in schema order, all drawing from one random source created for this
// call, so the same seed, schema, count and clock always give the same batch.
// Any field error aborts the batch.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "generator.Generate", trace.WithAttributes(
		attribute.Int("generator.count", req.Count),
		attribute.Int("generator.fields", len(req.Schema)),
		attribute.Bool("generator.seeded", req.Seed != nil),
	))
	defer span.End()

	result, err := s.generate(ctx, req)
	fallbacks := 0
	if result != nil {
		fallbacks = result.Fallbacks
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.ObserveBatch(string(dErrors.CodeOf(err)), 0, fallbacks, time.Since(start))
		s.logger.WarnContext(ctx, "generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"count", req.Count,
			"fields", len(req.Schema),
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("generator.fallbacks", result.Fallbacks))
	s.metrics.ObserveBatch("success", len(result.Records), result.Fallbacks, time.Since(start))
	s.logger.InfoContext(ctx, "batch generated",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(result.Records),
		"fields", len(req.Schema),
		"seeded", req.Seed != nil,
		"fallbacks", result.Fallbacks,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (s *Service) generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if req.Count < 1 {
		return nil, dErrors.New(dErrors.CodeValidation, "count must be at least 1")
	}
	strict := s.strict
	if req.Strict != nil {
		strict = *req.Strict
	}
	resolver := s.registry.NewResolver(newSource(req.Seed),
		fields.WithStrict(strict),
		fields.WithNow(requestcontext.Now(ctx)),
	)

	records := make([]models.Record, 0, req.Count)
	for range req.Count {
		if err := ctx.Err(); err != nil {
			return &Result{Fallbacks: resolver.Fallbacks()}, dErrors.Wrap(err, dErrors.CodeTimeout, "generation cancelled")
		}
		rec := make(models.Record, len(req.Schema))
		for j, entry := range req.Schema {
			v, err := resolver.Resolve(entry.Type, entry.Constraints)
			if err != nil {
				fe := &FieldError{Field: entry.Name, FieldType: entry.Type, Err: err}
				return &Result{Fallbacks: resolver.Fallbacks()},
					dErrors.Wrap(fe, dErrors.CodeOf(err), "Generation error")
			}
			rec[j] = models.Field{Name: entry.Name, Value: v}
		}
		records = append(records, rec)
	}
	return &Result{Records: records, Fallbacks: resolver.Fallbacks()}, nil
}

// newSource returns the batch's random source: a PCG stream derived from the
// seed, or a randomly seeded one.
func newSource(seed *int64) fields.Source {
	if seed == nil {
		return gofakeit.New(0)
	}
	s := uint64(*seed)
	return gofakeit.NewFaker(rand.NewPCG(s, s), false)
}
