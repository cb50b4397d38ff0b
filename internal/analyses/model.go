package analyses

import (
	"time"

	"resume-optimizer/internal/ats"
)

// Analysis is a scored comparison of one resume against one job description.
type Analysis struct {
	ID                 string
	UserID             string
	ResumeID           string
	JobDescription     string
	JobTitle           string
	CompanyName        string
	MatchScore         float64
	ATSScore           float64
	SemanticSimilarity float64
	MatchingKeywords   []string
	MissingKeywords    []string
	ATSIssues          []ats.Issue
	ProcessingTimeMs   int
	CreatedAt          time.Time
}
