package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-optimizer/internal/parser"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, file_name, file_path, file_type, file_size, file_hash, parsed_text, parsed_data, storage_backend, storage_url, storage_key, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    file_path,
    file_type,
    file_size,
    file_hash,
    parsed_text,
    parsed_data,
    storage_backend,
    storage_url,
    storage_key,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var parsedData any
	if resume.ParsedData != nil {
		raw, err := json.Marshal(resume.ParsedData)
		if err != nil {
			return fmt.Errorf("marshal parsed data: %w", err)
		}
		parsedData = raw
	}
	storageBackend := resume.StorageBackend
	if storageBackend == "" {
		storageBackend = "local"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.FilePath,
		resume.FileType,
		resume.FileSize,
		nullString(resume.FileHash),
		nullString(resume.ParsedText),
		parsedData,
		storageBackend,
		nullString(resume.StorageURL),
		nullString(resume.StorageKey),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + resumeColumns + ` FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	out, err := r.queryResumes(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepo) ListAllByUser(ctx context.Context, userID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryResumes(ctx, query, userID)
}

// FindByHash returns the newest resume of userID with the given content hash.
func (r *PGRepo) FindByHash(ctx context.Context, userID, fileHash string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes
WHERE user_id = $1 AND file_hash = $2
ORDER BY created_at DESC
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, fileHash))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *PGRepo) queryResumes(ctx context.Context, query string, args ...any) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var fileHash, parsedText, storageURL, storageKey sql.NullString
	var parsedData []byte
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.FilePath,
		&resume.FileType,
		&resume.FileSize,
		&fileHash,
		&parsedText,
		&parsedData,
		&resume.StorageBackend,
		&storageURL,
		&storageKey,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	resume.FileHash = fileHash.String
	resume.ParsedText = parsedText.String
	resume.StorageURL = storageURL.String
	resume.StorageKey = storageKey.String
	if len(parsedData) > 0 {
		var parsed parser.ParsedResume
		if err := json.Unmarshal(parsedData, &parsed); err != nil {
			return Resume{}, fmt.Errorf("decode parsed data: %w", err)
		}
		resume.ParsedData = &parsed
	}
	return resume, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
