package object

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// ResumeKey builds the storage key for a user's uploaded resume:
// resumes/<user_id>/<uuid>.<ext>.
func ResumeKey(userID, fileType string) string {
	ext := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return path.Join("resumes", userID, name)
}
