package analyses

import (
	"time"

	"resume-optimizer/internal/ats"
)

// AnalysisResponse is the outward-facing representation of an analysis.
type AnalysisResponse struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"user_id"`
	ResumeID           string      `json:"resume_id"`
	JobDescription     string      `json:"job_description"`
	JobTitle           *string     `json:"job_title"`
	CompanyName        *string     `json:"company_name"`
	MatchScore         float64     `json:"match_score"`
	ATSScore           float64     `json:"ats_score"`
	SemanticSimilarity float64     `json:"semantic_similarity"`
	MatchingKeywords   []string    `json:"matching_keywords"`
	MissingKeywords    []string    `json:"missing_keywords"`
	ATSIssues          []ats.Issue `json:"ats_issues"`
	ProcessingTimeMs   int         `json:"processing_time_ms"`
	CreatedAt          time.Time   `json:"created_at"`
}

type ListResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func ToResponse(a Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		ResumeID:           a.ResumeID,
		JobDescription:     a.JobDescription,
		JobTitle:           optional(a.JobTitle),
		CompanyName:        optional(a.CompanyName),
		MatchScore:         a.MatchScore,
		ATSScore:           a.ATSScore,
		SemanticSimilarity: a.SemanticSimilarity,
		MatchingKeywords:   a.MatchingKeywords,
		MissingKeywords:    a.MissingKeywords,
		ATSIssues:          a.ATSIssues,
		ProcessingTimeMs:   a.ProcessingTimeMs,
		CreatedAt:          a.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
