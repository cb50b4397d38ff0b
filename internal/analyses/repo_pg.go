package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-optimizer/internal/ats"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, user_id, resume_id, job_description, job_title, company_name, match_score, ats_score, semantic_similarity, matching_keywords, missing_keywords, ats_issues, processing_time_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO resume_analyses (
    id,
    user_id,
    resume_id,
    job_description,
    job_title,
    company_name,
    match_score,
    ats_score,
    semantic_similarity,
    matching_keywords,
    missing_keywords,
    ats_issues,
    processing_time_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	matching, err := marshalJSONB(analysis.MatchingKeywords)
	if err != nil {
		return err
	}
	missing, err := marshalJSONB(analysis.MissingKeywords)
	if err != nil {
		return err
	}
	issues, err := marshalJSONB(analysis.ATSIssues)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.UserID,
		analysis.ResumeID,
		analysis.JobDescription,
		nullString(analysis.JobTitle),
		nullString(analysis.CompanyName),
		analysis.MatchScore,
		analysis.ATSScore,
		analysis.SemanticSimilarity,
		matching,
		missing,
		issues,
		analysis.ProcessingTimeMs,
		analysis.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM resume_analyses WHERE id = $1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resume_analyses WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + analysisColumns + ` FROM resume_analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepo) Delete(ctx context.Context, analysisID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_analyses WHERE id = $1`, analysisID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resume_analyses WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resume_analyses WHERE user_id = $1`, userID)
	return err
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var jobTitle, companyName sql.NullString
	var matchScore, atsScore, similarity sql.NullFloat64
	var processing sql.NullInt64
	var matching, missing, issues []byte
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.ResumeID,
		&a.JobDescription,
		&jobTitle,
		&companyName,
		&matchScore,
		&atsScore,
		&similarity,
		&matching,
		&missing,
		&issues,
		&processing,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	a.JobTitle = jobTitle.String
	a.CompanyName = companyName.String
	a.MatchScore = matchScore.Float64
	a.ATSScore = atsScore.Float64
	a.SemanticSimilarity = similarity.Float64
	a.ProcessingTimeMs = int(processing.Int64)

	a.MatchingKeywords = []string{}
	a.MissingKeywords = []string{}
	a.ATSIssues = []ats.Issue{}
	if err := unmarshalJSONB(matching, &a.MatchingKeywords); err != nil {
		return Analysis{}, fmt.Errorf("decode matching_keywords: %w", err)
	}
	if err := unmarshalJSONB(missing, &a.MissingKeywords); err != nil {
		return Analysis{}, fmt.Errorf("decode missing_keywords: %w", err)
	}
	if err := unmarshalJSONB(issues, &a.ATSIssues); err != nil {
		return Analysis{}, fmt.Errorf("decode ats_issues: %w", err)
	}
	return a, nil
}

func marshalJSONB(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return raw, nil
}

func unmarshalJSONB(raw []byte, dest any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
