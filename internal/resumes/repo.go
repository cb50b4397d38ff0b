package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	// ListByUser returns one page newest-first plus the user's total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, int, error)
	ListAllByUser(ctx context.Context, userID string) ([]Resume, error)
	FindByHash(ctx context.Context, userID, fileHash string) (Resume, error)
	Delete(ctx context.Context, resumeID string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
