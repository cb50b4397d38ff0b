package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	url, size, err := store.Put(ctx, "resumes/u1/a.pdf", "application/pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)
	assert.Equal(t, filepath.Join(dir, "resumes", "u1", "a.pdf"), url)

	rc, err := store.Open(ctx, "resumes/u1/a.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))

	require.NoError(t, store.Delete(ctx, "resumes/u1/a.pdf"))
	_, err = os.Stat(url)
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	require.NoError(t, store.Delete(ctx, "resumes/u1/a.pdf"))

	_, err = store.Open(ctx, "resumes/u1/a.pdf")
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestRejectsTraversal(t *testing.T) {
	t.Parallel()
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../escape.pdf", "/etc/passwd", "", "a/../../b"} {
		_, _, err := store.Put(ctx, key, "", strings.NewReader("x"))
		assert.Error(t, err, key)
		_, err = store.Open(ctx, key)
		assert.Error(t, err, key)
		assert.Error(t, store.Delete(ctx, key), key)
	}
}

func TestPresignUnsupported(t *testing.T) {
	t.Parallel()
	store := New(t.TempDir())
	_, err := store.PresignGet(context.Background(), "resumes/u1/a.pdf", time.Hour)
	assert.ErrorIs(t, err, object.ErrPresignUnsupported)
	assert.Equal(t, object.BackendLocal, store.Backend())
}

func TestPutHonorsCanceledContext(t *testing.T) {
	t.Parallel()
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := store.Put(ctx, "resumes/u1/a.pdf", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
