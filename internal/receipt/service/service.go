package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tally/internal/receipt"
	"tally/internal/receipt/metrics"
	dErrors "tally/pkg/domain-errors"
)

// Store is the persistence the service needs. The in-memory implementation in
// the receipt package satisfies it.
type Store interface {
	Submit(ctx context.Context, r receipt.Receipt) (id string, created bool, err error)
	Get(ctx context.Context, id string) (*receipt.Receipt, error)
}

// Service orchestrates validation, deduplicating storage and scoring. It keeps
// domain flow out of handlers and domain logic thin.
type Service struct {
	store   Store
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func New(store Store, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		metrics: m,
		tracer:  otel.Tracer("tally/receipt"),
	}
}

// Process validates a decoded payload and stores the receipt, returning the
// identifier its content is filed under. Identical content always maps to the
// same identifier, so resubmission is a cheap no-op rather than an error.
func (s *Service) Process(ctx context.Context, payload map[string]any) (string, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.Process")
	defer span.End()

	if err := receipt.Validate(payload); err != nil {
		return "", err
	}

	id, created, err := s.store.Submit(ctx, receipt.FromPayload(payload))
	if err != nil {
		return "", dErrors.New(dErrors.CodeInternal, "failed to store receipt")
	}
	span.SetAttributes(attribute.Bool("receipt.duplicate", !created))

	if s.metrics != nil {
		s.metrics.IncrementProcessed()
		if !created {
			s.metrics.IncrementDuplicates()
		}
	}
	return id, nil
}

// Points returns the score for a stored receipt.
func (s *Service) Points(ctx context.Context, id string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.Points")
	defer span.End()

	r, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementLookups()
	}
	return receipt.Points(*r), nil
}
