package resumes

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"resume-optimizer/internal/parser"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/storage/object/local"
)

const testUser = "user-1"

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func stubParse(text string) ParseFunc {
	return func(ctx context.Context, data []byte, fileType string) (parser.ParsedResume, error) {
		return parser.Parse(text), nil
	}
}

func newLocalService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := NewService(repo, local.New(t.TempDir()))
	svc.Parse = stubParse("Jane Doe\njane@example.com\nSkills\nGo, PostgreSQL")
	return svc, repo
}

// cloudStore is an in-memory stand-in for an s3 bucket.
type cloudStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newCloudStore() *cloudStore {
	return &cloudStore{objects: map[string][]byte{}}
}

func (s *cloudStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://bucket.example.com/" + key, int64(len(data)), nil
}

func (s *cloudStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *cloudStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?X-Amz-Expires=" + ttl.String(), nil
}

func (s *cloudStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *cloudStore) Backend() string { return object.BackendS3 }

type recordingCleaner struct {
	resumes []string
	users   []string
}

func (c *recordingCleaner) DeleteByResume(ctx context.Context, resumeID string) error {
	c.resumes = append(c.resumes, resumeID)
	return nil
}

func (c *recordingCleaner) DeleteByUser(ctx context.Context, userID string) error {
	c.users = append(c.users, userID)
	return nil
}
