package analyses

import "errors"

var (
	ErrNotFound       = errors.New("analysis not found")
	ErrForbidden      = errors.New("analysis belongs to another user")
	ErrInvalidID      = errors.New("invalid analysis id")
	ErrResumeNotFound = errors.New("resume not found or access denied")
	ErrSourceConflict = errors.New("provide either 'file' or 'resume_id', not both or neither")
	ErrNoJobDesc      = errors.New("job_description is required")
)
