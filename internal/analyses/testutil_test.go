package analyses

import (
	"context"
	"testing"

	"resume-optimizer/internal/parser"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/shared/storage/object/local"
)

const (
	testUser = "user-1"

	resumeText = `Jane Doe
jane@example.com
+1 555 123 4567
linkedin.com/in/janedoe

Summary
Backend engineer building distributed systems in Rust and PostgreSQL.

Experience
Senior Engineer, Acme Corp
Built Rust services backed by PostgreSQL and Kafka.

Education
BSc Computer Science

Skills
Rust, PostgreSQL, Kafka, Docker`

	jobDescription = `We are hiring a backend engineer with strong Rust experience.
You will design PostgreSQL schemas, operate Kafka pipelines and deploy with Kubernetes.`
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type fixture struct {
	svc     *Service
	repo    *MemoryRepo
	resumes *resumes.Service
	stored  *resumes.MemoryRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	stored := resumes.NewMemoryRepo()
	resumeSvc := resumes.NewService(stored, local.New(t.TempDir()))
	resumeSvc.Parse = func(ctx context.Context, data []byte, fileType string) (parser.ParsedResume, error) {
		return parser.Parse(resumeText), nil
	}
	repo := NewMemoryRepo()
	resumeSvc.Analyses = repo
	return fixture{
		svc:     NewService(repo, resumeSvc),
		repo:    repo,
		resumes: resumeSvc,
		stored:  stored,
	}
}

func (f fixture) upload(t *testing.T, userID string) resumes.Resume {
	t.Helper()
	resume, err := f.resumes.Upload(context.Background(), userID, "cv.pdf", "application/pdf", pdfBytes)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resume
}
