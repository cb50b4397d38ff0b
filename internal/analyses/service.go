package analyses

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/ats"
	"resume-optimizer/internal/keywords"
	"resume-optimizer/internal/parser"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

const (
	keywordWeight = 0.6
	atsWeight     = 0.4
)

// ResumeSource resolves the resume an analysis runs against.
type ResumeSource interface {
	UploadOrReuse(ctx context.Context, userID, fileName, contentType string, data []byte) (resumes.Resume, bool, error)
	Get(ctx context.Context, userID, resumeID string) (resumes.Resume, error)
	Text(ctx context.Context, resume resumes.Resume) (string, error)
	Delete(ctx context.Context, userID, resumeID string) error
	UploadLimit() int64
}

// Upload is a resume file submitted together with an analysis request.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateInput holds one analysis request. Exactly one of File and ResumeID is set.
type CreateInput struct {
	UserID         string
	ResumeID       string
	File           *Upload
	JobDescription string
	JobTitle       string
	CompanyName    string
}

// Service contains business logic for analyses.
type Service struct {
	Repo     Repo
	Resumes  ResumeSource
	Analyzer *keywords.Analyzer
	Now      func() time.Time
}

func NewService(repo Repo, resumeSource ResumeSource) *Service {
	return &Service{
		Repo:     repo,
		Resumes:  resumeSource,
		Analyzer: keywords.NewAnalyzer(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create scores a resume against a job description and records the result.
func (s *Service) Create(ctx context.Context, in CreateInput) (Analysis, error) {
	started := time.Now()
	analysis, err := s.create(ctx, in, started)
	switch {
	case err == nil:
		metrics.IncAnalysis("success")
		metrics.ObserveAnalysisDurationMs(float64(analysis.ProcessingTimeMs))
	case isClientError(err):
		metrics.IncAnalysis("rejected")
	default:
		metrics.IncAnalysis("error")
		telemetry.Error("analyses.create_failed", map[string]any{
			"user_id": in.UserID,
			"error":   err.Error(),
		})
	}
	return analysis, err
}

func (s *Service) create(ctx context.Context, in CreateInput, started time.Time) (Analysis, error) {
	hasFile := in.File != nil
	hasResumeID := strings.TrimSpace(in.ResumeID) != ""
	if hasFile == hasResumeID {
		return Analysis{}, ErrSourceConflict
	}
	jobDescription := strings.TrimSpace(in.JobDescription)
	if jobDescription == "" {
		return Analysis{}, ErrNoJobDesc
	}

	resume, created, err := s.resolveResume(ctx, in)
	if err != nil {
		return Analysis{}, err
	}

	analysis, err := s.score(ctx, in, resume, jobDescription, started)
	if err != nil && created {
		s.discardResume(in.UserID, resume.ID)
	}
	return analysis, err
}

func (s *Service) score(ctx context.Context, in CreateInput, resume resumes.Resume, jobDescription string, started time.Time) (Analysis, error) {
	text, err := s.Resumes.Text(ctx, resume)
	if err != nil {
		return Analysis{}, fmt.Errorf("resume text: %w", err)
	}
	parsed := parser.Parse(text)
	if resume.ParsedData != nil {
		parsed = *resume.ParsedData
		if strings.TrimSpace(parsed.RawText) == "" {
			parsed.RawText = text
		}
	}

	match := s.analyzer().MatchScore(text, jobDescription)
	report := ats.Check(parsed)

	analysis := Analysis{
		ID:                 uuid.NewString(),
		UserID:             in.UserID,
		ResumeID:           resume.ID,
		JobDescription:     jobDescription,
		JobTitle:           strings.TrimSpace(in.JobTitle),
		CompanyName:        strings.TrimSpace(in.CompanyName),
		MatchScore:         OverallScore(match.Score, report.ATSScore),
		ATSScore:           float64(report.ATSScore),
		SemanticSimilarity: float64(match.Score),
		MatchingKeywords:   nonNil(match.MatchedKeywords),
		MissingKeywords:    nonNil(match.MissingKeywords),
		ATSIssues:          report.Issues,
		ProcessingTimeMs:   int(time.Since(started).Milliseconds()),
		CreatedAt:          s.now(),
	}
	if analysis.ATSIssues == nil {
		analysis.ATSIssues = []ats.Issue{}
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("create analysis: %w", err)
	}
	telemetry.Info("analyses.created", map[string]any{
		"analysis_id":        analysis.ID,
		"resume_id":          resume.ID,
		"user_id":            in.UserID,
		"match_score":        analysis.MatchScore,
		"processing_time_ms": analysis.ProcessingTimeMs,
	})
	return analysis, nil
}

// resolveResume reports created=true when the file was uploaded by this request.
func (s *Service) resolveResume(ctx context.Context, in CreateInput) (resumes.Resume, bool, error) {
	if in.File != nil {
		resume, reused, err := s.Resumes.UploadOrReuse(ctx, in.UserID, in.File.FileName, in.File.ContentType, in.File.Data)
		if err != nil {
			return resumes.Resume{}, false, err
		}
		if reused {
			telemetry.Info("analyses.resume_reused", map[string]any{"resume_id": resume.ID, "user_id": in.UserID})
		}
		return resume, !reused, nil
	}

	resume, err := s.Resumes.Get(ctx, in.UserID, strings.TrimSpace(in.ResumeID))
	switch {
	case errors.Is(err, resumes.ErrNotFound), errors.Is(err, resumes.ErrForbidden), errors.Is(err, resumes.ErrInvalidID):
		return resumes.Resume{}, false, ErrResumeNotFound
	case err != nil:
		return resumes.Resume{}, false, err
	}
	return resume, false, nil
}

// discardResume removes a resume uploaded for an analysis that then failed.
// It runs detached from the request context so a canceled request still cleans up.
func (s *Service) discardResume(userID, resumeID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Resumes.Delete(ctx, userID, resumeID); err != nil {
		telemetry.Warn("analyses.resume_rollback_failed", map[string]any{
			"resume_id": resumeID,
			"user_id":   userID,
			"error":     err.Error(),
		})
	}
}

// OverallScore blends keyword and ATS scores, rounded to two decimals.
func OverallScore(keywordScore, atsScore int) float64 {
	raw := float64(keywordScore)*keywordWeight + float64(atsScore)*atsWeight
	return math.Round(raw*100) / 100
}

// Page is one page of a user's analyses.
type Page struct {
	Analyses []Analysis
	Total    int
	Page     int
	PageSize int
}

// List returns a page of analyses. Out-of-range paging falls back to defaults.
func (s *Service) List(ctx context.Context, userID string, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	items, total, err := s.Repo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}
	return Page{Analyses: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get returns an analysis owned by userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrInvalidID
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrForbidden
	}
	return analysis, nil
}

func (s *Service) Delete(ctx context.Context, userID, analysisID string) error {
	analysis, err := s.Get(ctx, userID, analysisID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, analysis.ID); err != nil {
		return err
	}
	telemetry.Info("analyses.deleted", map[string]any{"analysis_id": analysis.ID, "user_id": userID})
	return nil
}

func (s *Service) analyzer() *keywords.Analyzer {
	if s.Analyzer == nil {
		s.Analyzer = keywords.NewAnalyzer()
	}
	return s.Analyzer
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func isClientError(err error) bool {
	return errors.Is(err, ErrSourceConflict) ||
		errors.Is(err, ErrNoJobDesc) ||
		errors.Is(err, ErrResumeNotFound) ||
		errors.Is(err, resumes.ErrInvalidInput)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
