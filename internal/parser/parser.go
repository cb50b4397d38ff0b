package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"resume-optimizer/internal/extract"
)

const (
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionSummary    = "summary"
)

// maxHeadingWords bounds how long a line may be and still count as a heading.
const maxHeadingWords = 5

// Sections holds the body text under each recognized heading. Missing sections are empty.
type Sections struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Summary    string `json:"summary"`
}

// Get returns the content for a section name.
func (s Sections) Get(name string) string {
	switch name {
	case SectionExperience:
		return s.Experience
	case SectionEducation:
		return s.Education
	case SectionSkills:
		return s.Skills
	case SectionSummary:
		return s.Summary
	}
	return ""
}

func (s *Sections) set(name, content string) {
	switch name {
	case SectionExperience:
		s.Experience = content
	case SectionEducation:
		s.Education = content
	case SectionSkills:
		s.Skills = content
	case SectionSummary:
		s.Summary = content
	}
}

// ParsedResume is the structured form of a resume's text.
type ParsedResume struct {
	RawText  string   `json:"raw_text"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	LinkedIn *string  `json:"linkedin"`
	Sections Sections `json:"sections"`
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
)

type headingRule struct {
	section  string
	patterns []*regexp.Regexp
}

// Rules are checked in order; the first match names the section.
var headingRules = []headingRule{
	{SectionExperience, compileAll(`work\s+experience`, `professional\s+experience`, `experience`, `employment\s+history`)},
	{SectionEducation, compileAll(`education`, `academic`, `qualifications`)},
	{SectionSkills, compileAll(`skills`, `technical\s+skills`, `core\s+competencies`)},
	{SectionSummary, compileAll(`summary`, `objective`, `profile`)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Parse extracts contact details and sections from resume text.
func Parse(text string) ParsedResume {
	return ParsedResume{
		RawText:  text,
		Email:    findFirst(emailPattern, text),
		Phone:    findFirst(phonePattern, text),
		LinkedIn: findFirst(linkedinPattern, text),
		Sections: identifySections(text),
	}
}

// ParseFile extracts text from a PDF or DOCX payload and parses it.
func ParseFile(ctx context.Context, data []byte, fileType string) (ParsedResume, error) {
	text, err := extract.TextFromBytes(ctx, data, fileType)
	if err != nil {
		return ParsedResume{}, fmt.Errorf("parse %s: %w", fileType, err)
	}
	return Parse(text), nil
}

func findFirst(re *regexp.Regexp, text string) *string {
	m := re.FindString(text)
	if m == "" {
		return nil
	}
	return &m
}

func identifySections(text string) Sections {
	var sections Sections
	blocks := map[string][]string{}
	current := ""
	var content []string

	flush := func() {
		if current != "" && len(content) > 0 {
			blocks[current] = append(blocks[current], strings.Join(content, "\n"))
		}
		content = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if name := headingFor(trimmed); name != "" {
			flush()
			current = name
			continue
		}
		if current != "" {
			content = append(content, trimmed)
		}
	}
	flush()

	for name, parts := range blocks {
		sections.set(name, strings.Join(parts, "\n"))
	}
	return sections
}

// headingFor returns the section a line introduces, or "" if it is body text.
func headingFor(line string) string {
	if len(strings.Fields(line)) > maxHeadingWords {
		return ""
	}
	lower := strings.ToLower(line)
	for _, rule := range headingRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.section
			}
		}
	}
	return ""
}
