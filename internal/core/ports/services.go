package ports

import (
	"context"

	"team-project-backend/internal/core/domain/report"
	"team-project-backend/internal/core/domain/submission"
)

// SubmissionService validates code submissions received over HTTP.
type SubmissionService interface {
	// Submit parses and validates a raw request body.
	Submit(ctx context.Context, body []byte) (submission.Submission, error)
}

// ChartRenderer hands a single chart to an external viewer.
type ChartRenderer interface {
	// Show renders the chart at position index and returns where it was written.
	Show(ctx context.Context, index int, chart report.Chart) (string, error)
}

// BrowserOpener opens a local file in the user's browser.
type BrowserOpener interface {
	Open(path string) error
}
