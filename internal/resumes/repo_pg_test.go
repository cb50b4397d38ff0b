package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer/internal/parser"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

var columns = []string{
	"id", "user_id", "file_name", "file_path", "file_type", "file_size", "file_hash",
	"parsed_text", "parsed_data", "storage_backend", "storage_url", "storage_key",
	"created_at", "updated_at",
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	parsed := parser.Parse("Jane Doe\njane@example.com")
	resume := Resume{
		ID: "r1", UserID: "u1", FileName: "cv.pdf", FilePath: "resumes/u1/a.pdf", FileType: "pdf",
		FileSize: 42, FileHash: "abc", ParsedText: parsed.RawText, ParsedData: &parsed,
		StorageKey: "resumes/u1/a.pdf", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("r1", "u1", "cv.pdf", "resumes/u1/a.pdf", "pdf", int64(42), "abc", parsed.RawText,
			sqlmock.AnyArg(), "local", nil, "resumes/u1/a.pdf", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), resume))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCreateWithoutParsedData(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("r1", "u1", "cv.pdf", "/tmp/cv.pdf", "pdf", int64(1), nil, nil,
			nil, "local", nil, nil, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), Resume{
		ID: "r1", UserID: "u1", FileName: "cv.pdf", FilePath: "/tmp/cv.pdf", FileType: "pdf",
		FileSize: 1, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetByIDDecodesParsedData(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	parsedJSON := []byte(`{"raw_text":"Jane","email":"jane@example.com","phone":null,"linkedin":null,"sections":{"experience":"","education":"","skills":"Go","summary":""}}`)

	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id = \\$1").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"r1", "u1", "cv.pdf", "resumes/u1/a.pdf", "pdf", int64(42), "abc",
			"Jane", parsedJSON, "s3", "https://bucket/a.pdf", "resumes/u1/a.pdf", created, created,
		))

	resume, err := repo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "s3", resume.StorageBackend)
	assert.Equal(t, "resumes/u1/a.pdf", resume.StorageKey)
	require.NotNil(t, resume.ParsedData)
	require.NotNil(t, resume.ParsedData.Email)
	assert.Equal(t, "jane@example.com", *resume.ParsedData.Email)
	assert.Equal(t, "Go", resume.ParsedData.Sections.Skills)
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGRepoListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM resumes WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM resumes\\s+WHERE user_id = \\$1\\s+ORDER BY created_at DESC\\s+LIMIT \\$2 OFFSET \\$3").
		WithArgs("u1", 2, 2).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"r3", "u1", "cv.pdf", "/tmp/cv.pdf", "pdf", int64(1), nil, nil, nil, "local", nil, nil, created, created,
		))

	items, total, err := repo.ListByUser(context.Background(), "u1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "r3", items[0].ID)
	assert.Nil(t, items[0].ParsedData)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resumes WHERE id = \\$1").
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM resumes WHERE id = \\$1").
		WithArgs("r2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "r2"), ErrNotFound)
}

func TestPGRepoDeleteByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resumes WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
