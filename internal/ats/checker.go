package ats

import (
	"regexp"
	"strings"

	"resume-optimizer/internal/parser"
)

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"

	TypeMissingSection = "missing_section"
	TypeFormatting     = "formatting_issue"

	// PassingScore is the minimum score for a resume to pass.
	PassingScore = 70
)

// Issue is a single ATS compatibility problem.
type Issue struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Section        string `json:"section,omitempty"`
	Issue          string `json:"issue,omitempty"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Report summarizes the ATS check of a resume.
type Report struct {
	ATSScore        int      `json:"ats_score"`
	Issues          []Issue  `json:"issues"`
	IssueCount      int      `json:"issue_count"`
	Recommendations []string `json:"recommendations"`
	Passed          bool     `json:"passed"`
}

type sectionRule struct {
	section        string
	title          string
	severity       string
	message        string
	recommendation string
}

var sectionRules = []sectionRule{
	{
		section:        parser.SectionExperience,
		title:          "Experience",
		severity:       SeverityHigh,
		message:        "Missing 'Experience' section",
		recommendation: "Add a detailed work experience section with job titles, companies, dates, and key achievements",
	},
	{
		section:        parser.SectionEducation,
		title:          "Education",
		severity:       SeverityHigh,
		message:        "Missing 'Education' section",
		recommendation: "Add an education section with degrees, institutions, and graduation dates",
	},
	{
		section:        parser.SectionSkills,
		title:          "Skills",
		severity:       SeverityMedium,
		message:        "Missing 'Skills' section",
		recommendation: "Add a skills section listing relevant technical and soft skills",
	},
	{
		section:        parser.SectionSummary,
		title:          "Summary",
		severity:       SeverityLow,
		message:        "Missing 'Summary' or 'Objective' section",
		recommendation: "Consider adding a professional summary or career objective at the top of your resume",
	},
}

var (
	specialCharsPattern   = regexp.MustCompile(`[✓✔✗✘●•○◦▪▫◾◽⬛⬜]`)
	tablePattern          = regexp.MustCompile(`\|\s*.*\s*\|`)
	complexSpacingPattern = regexp.MustCompile(`\s{3,}`)
	imageKeywords         = []string{"image", "photo", "picture", "graphic", ".jpg", ".png", ".jpeg", ".gif"}
	headerFooterKeywords  = []string{"header", "footer"}
)

// Check scores a parsed resume for ATS compatibility.
func Check(parsed parser.ParsedResume) Report {
	issues := append(checkSections(parsed.Sections), checkFormatting(parsed.RawText)...)

	recommendations := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Recommendation != "" {
			recommendations = append(recommendations, issue.Recommendation)
		}
	}

	score := Score(issues)
	return Report{
		ATSScore:        score,
		Issues:          issues,
		IssueCount:      len(issues),
		Recommendations: recommendations,
		Passed:          score >= PassingScore,
	}
}

// Score starts at 100 and deducts 10, 5 or 2 points per high, medium or low issue.
func Score(issues []Issue) int {
	score := 100
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityHigh:
			score -= 10
		case SeverityMedium:
			score -= 5
		default:
			score -= 2
		}
	}
	if score < 0 {
		return 0
	}
	return score
}

func checkSections(sections parser.Sections) []Issue {
	issues := make([]Issue, 0, len(sectionRules))
	for _, rule := range sectionRules {
		if strings.TrimSpace(sections.Get(rule.section)) != "" {
			continue
		}
		issues = append(issues, Issue{
			Type:           TypeMissingSection,
			Severity:       rule.severity,
			Section:        rule.title,
			Message:        rule.message,
			Recommendation: rule.recommendation,
		})
	}
	return issues
}

func checkFormatting(text string) []Issue {
	var issues []Issue
	if text == "" {
		return issues
	}
	lower := strings.ToLower(text)

	if specialCharsPattern.MatchString(text) {
		issues = append(issues, Issue{
			Type:           TypeFormatting,
			Severity:       SeverityMedium,
			Issue:          "special_characters",
			Message:        "Special characters or bullets detected in resume",
			Recommendation: "Use simple text for section headings (e.g., 'EXPERIENCE' instead of '● Experience')",
		})
	}
	if tablePattern.MatchString(text) || strings.Contains(lower, "table") || strings.Contains(lower, "column") {
		issues = append(issues, Issue{
			Type:           TypeFormatting,
			Severity:       SeverityLow,
			Issue:          "table_columns",
			Message:        "Resume may contain tables or columns",
			Recommendation: "Avoid tables and multi-column layouts; use simple single-column format for better ATS compatibility",
		})
	}
	if containsAny(lower, imageKeywords) {
		issues = append(issues, Issue{
			Type:           TypeFormatting,
			Severity:       SeverityMedium,
			Issue:          "images_graphics",
			Message:        "Resume may contain images or graphics",
			Recommendation: "Remove images, photos, and graphics; ATS systems cannot parse visual content",
		})
	}
	if containsAny(lower, headerFooterKeywords) {
		issues = append(issues, Issue{
			Type:           TypeFormatting,
			Severity:       SeverityLow,
			Issue:          "header_footer",
			Message:        "Resume may have headers or footers",
			Recommendation: "Avoid putting important information in headers or footers; ATS may not parse them correctly",
		})
	}
	if complexSpacingPattern.MatchString(text) {
		issues = append(issues, Issue{
			Type:           TypeFormatting,
			Severity:       SeverityLow,
			Issue:          "complex_spacing",
			Message:        "Resume may have complex spacing or formatting",
			Recommendation: "Use consistent single spaces between words; avoid excessive spacing for alignment",
		})
	}
	return issues
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
