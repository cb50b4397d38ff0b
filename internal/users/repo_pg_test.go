package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

var columns = []string{"id", "email", "password_hash", "full_name", "is_active", "created_at", "updated_at"}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := User{ID: "u1", Email: "a@example.com", PasswordHash: "hash", IsActive: true}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "a@example.com", "hash", nil, true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), User{ID: "u1", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPGRepoGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u1", "a@example.com", "hash", "Ada", true, created, created))

	user, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.FullName)
	assert.True(t, user.IsActive)
	assert.Equal(t, created, user.CreatedAt)
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGRepoUpdateReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE users").
		WithArgs("u1", "b@example.com", "hash", nil, true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u1", "b@example.com", "hash", nil, true, now, now))

	user, err := repo.Update(context.Background(), User{ID: "u1", Email: "b@example.com", PasswordHash: "hash", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", user.Email)
	assert.Empty(t, user.FullName)
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM users").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users").WithArgs("u2").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u2"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
