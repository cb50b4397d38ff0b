package object

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeKey(t *testing.T) {
	t.Parallel()

	key := ResumeKey("user-1", ".PDF")
	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "resumes", parts[0])
	assert.Equal(t, "user-1", parts[1])
	require.True(t, strings.HasSuffix(parts[2], ".pdf"))
	_, err := uuid.Parse(strings.TrimSuffix(parts[2], ".pdf"))
	assert.NoError(t, err)

	assert.NotEqual(t, key, ResumeKey("user-1", "pdf"))
}
