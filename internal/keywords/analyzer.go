package keywords

import (
	"regexp"
	"strings"
)

// DefaultTopN is how many keywords are taken from a job description.
const DefaultTopN = 20

// MatchResult describes how many job-description keywords a resume contains.
type MatchResult struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	TotalKeywords   int      `json:"total_keywords"`
	MatchedCount    int      `json:"matched_count"`
	MissingCount    int      `json:"missing_count"`
}

// Analyzer extracts keywords with TF-IDF plus named entities.
type Analyzer struct {
	Entities    EntityExtractor
	MaxFeatures int
	TopN        int
}

// NewAnalyzer returns an Analyzer backed by prose entity recognition.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Entities: ProseExtractor{}, MaxFeatures: DefaultMaxFeatures, TopN: DefaultTopN}
}

// ExtractKeywords returns up to topN keywords: TF-IDF terms first, then entities.
func (a *Analyzer) ExtractKeywords(text string, topN int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	if topN <= 0 {
		topN = a.topN()
	}

	scores := TFIDF(Sentences(text), a.MaxFeatures)
	if len(scores) > topN {
		scores = scores[:topN]
	}

	seen := map[string]bool{}
	out := make([]string, 0, topN)
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	for _, s := range scores {
		add(s.Term)
	}
	for _, kw := range entityKeywords(a.Entities, text) {
		add(kw)
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// MatchScore checks which job-description keywords occur as whole words in
// the resume. The score is the truncated matched percentage.
func (a *Analyzer) MatchScore(resumeText, jobDescription string) MatchResult {
	empty := MatchResult{MatchedKeywords: []string{}, MissingKeywords: []string{}}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return empty
	}

	jobKeywords := a.ExtractKeywords(jobDescription, a.topN())
	if len(jobKeywords) == 0 {
		return empty
	}

	resumeLower := strings.ToLower(resumeText)
	matched := []string{}
	missing := []string{}
	for _, kw := range jobKeywords {
		if containsWord(resumeLower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	total := len(jobKeywords)
	return MatchResult{
		Score:           len(matched) * 100 / total,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		TotalKeywords:   total,
		MatchedCount:    len(matched),
		MissingCount:    len(missing),
	}
}

func (a *Analyzer) topN() int {
	if a.TopN <= 0 {
		return DefaultTopN
	}
	return a.TopN
}

// containsWord guards on letters and digits rather than \b, so terms that
// start or end with punctuation (c++, u.s.) still match as whole terms.
func containsWord(haystack, word string) bool {
	re, err := regexp.Compile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(word) + `(?:$|[^\p{L}\p{N}_])`)
	if err != nil {
		return strings.Contains(haystack, word)
	}
	return re.MatchString(haystack)
}
