package service

import (
	"context"
	"errors"
	"log/slog"

	"team-project-backend/internal/core/domain/submission"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type SubmissionService struct {
	tracer trace.Tracer
	logger *slog.Logger
}

func NewSubmissionService(logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		tracer: otel.Tracer("internal/core/service"),
		logger: logger,
	}
}

// Submit validates body as a code submission. Nothing is stored.
func (s *SubmissionService) Submit(ctx context.Context, body []byte) (submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.Submit", trace.WithAttributes(
		attribute.Int("body.size", len(body)),
	))
	defer span.End()

	s.logger.DebugContext(ctx, "received submission", "body", string(body))

	sub, err := submission.Parse(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission rejected")

		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			span.SetAttributes(attribute.Int("submission.violations", len(verr.Violations)))
			s.logger.InfoContext(ctx, "submission rejected", "violations", len(verr.Violations))
		} else {
			s.logger.InfoContext(ctx, "submission malformed", "error", err)
		}
		return submission.Submission{}, err
	}

	span.SetAttributes(attribute.String("submission.name", sub.Name))
	s.logger.DebugContext(ctx, "submission accepted", "submission", sub)
	return sub, nil
}
