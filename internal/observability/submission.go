package observability

import (
	"context"
	"errors"

	"team-project-backend/internal/core/domain/submission"
	"team-project-backend/internal/core/ports"
)

// InstrumentedSubmissionService is a decorator that counts submission outcomes.
type InstrumentedSubmissionService struct {
	inner ports.SubmissionService
}

var _ ports.SubmissionService = (*InstrumentedSubmissionService)(nil)

// NewInstrumentedSubmissionService wraps inner with outcome counters.
func NewInstrumentedSubmissionService(inner ports.SubmissionService) *InstrumentedSubmissionService {
	return &InstrumentedSubmissionService{inner: inner}
}

func (s *InstrumentedSubmissionService) Submit(ctx context.Context, body []byte) (submission.Submission, error) {
	sub, err := s.inner.Submit(ctx, body)
	submissionsTotal.WithLabelValues(outcome(err)).Inc()
	return sub, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case errors.Is(err, submission.ErrValidation):
		return OutcomeRejected
	default:
		return OutcomeMalformed
	}
}
