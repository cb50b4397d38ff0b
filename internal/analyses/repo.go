package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, int, error)
	Delete(ctx context.Context, analysisID string) error
	DeleteByResume(ctx context.Context, resumeID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
