package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrForbidden    = errors.New("resume belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidID    = errors.New("invalid resume id")
	ErrNotInCloud   = errors.New("resume is not stored in cloud storage")
)

// UploadError is a rejected upload. It matches ErrInvalidInput and carries
// the message shown to the client.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string { return e.Message }

func (e *UploadError) Is(target error) bool { return target == ErrInvalidInput }
