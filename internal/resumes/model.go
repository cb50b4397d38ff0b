package resumes

import (
	"time"

	"resume-optimizer/internal/parser"
)

// Resume is an uploaded resume file owned by a user, with its parsed content.
type Resume struct {
	ID             string
	UserID         string
	FileName       string
	FilePath       string
	FileType       string
	FileSize       int64
	FileHash       string
	ParsedText     string
	ParsedData     *parser.ParsedResume
	StorageBackend string
	StorageURL     string
	StorageKey     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
