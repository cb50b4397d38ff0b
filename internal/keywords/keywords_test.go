package keywords

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntities struct {
	ents []Entity
	err  error
}

func (s stubEntities) Entities(string) ([]Entity, error) { return s.ents, s.err }

func TestTokenize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"senior", "rust", "engineer", "kubernetes"},
		Tokenize("We are a Senior Rust engineer, with Kubernetes; a b"))
	// "go" is on the standard stop-word list
	assert.Empty(t, Tokenize("go"))
	assert.Empty(t, Tokenize("the and of"))
}

func TestSentences(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"Go experience", "SQL required"}, Sentences("Go experience. SQL required.  ."))
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, Sentences("Go\nSQL\n\nDocker"))
	assert.Empty(t, Sentences("   "))
}

func TestTFIDFScores(t *testing.T) {
	t.Parallel()
	scores := TFIDF([]string{"rust rust sql", "rust docker"}, 100)

	terms := make([]string, 0, len(scores))
	for _, s := range scores {
		terms = append(terms, s.Term)
	}
	assert.Equal(t, []string{"rust", "docker", "rust docker", "rust rust", "rust sql", "sql"}, terms)
	assert.InDelta(t, 1.08425, scores[0].Score, 1e-4)
	assert.InDelta(t, 0.63167, scores[1].Score, 1e-4)
	assert.InDelta(t, 0.44610, scores[5].Score, 1e-4)
}

func TestTFIDFMaxFeatures(t *testing.T) {
	t.Parallel()
	scores := TFIDF([]string{"rust rust sql", "rust docker"}, 1)
	require.Len(t, scores, 1)
	assert.Equal(t, "rust", scores[0].Term)
	assert.InDelta(t, 2.0, scores[0].Score, 1e-9)

	assert.Empty(t, TFIDF(nil, 10))
	assert.Empty(t, TFIDF([]string{"the of and"}, 10))
}

func TestExtractKeywordsCombinesEntities(t *testing.T) {
	t.Parallel()
	a := &Analyzer{Entities: stubEntities{ents: []Entity{
		{Text: "Google", Label: "ORG"},
		{Text: "Rust", Label: "PRODUCT"},
		{Text: "X", Label: "ORG"},
		{Text: "Monday", Label: "DATE"},
		{Text: "google", Label: "ORG"},
	}}}

	kws := a.ExtractKeywords("Rust developer. Rust services", 10)
	require.NotEmpty(t, kws)
	assert.Equal(t, "rust", kws[0])
	assert.Contains(t, kws, "google")
	assert.NotContains(t, kws, "x")
	assert.NotContains(t, kws, "monday")
	assert.Equal(t, "google", kws[len(kws)-1])

	assert.Equal(t, []string{}, a.ExtractKeywords("  ", 10))
	assert.Len(t, a.ExtractKeywords("alpha beta gamma delta. epsilon zeta eta theta", 3), 3)
}

func TestExtractKeywordsSurvivesEntityFailure(t *testing.T) {
	t.Parallel()
	a := &Analyzer{Entities: stubEntities{err: errors.New("model unavailable")}}
	assert.Equal(t, "python", a.ExtractKeywords("Python. Python developer", 5)[0])
}

func TestMatchScore(t *testing.T) {
	t.Parallel()
	a := &Analyzer{}
	jd := "Python developer.\nDjango required.\nDocker preferred."
	res := a.MatchScore("Experienced Python developer using Django daily", jd)

	assert.Equal(t, res.TotalKeywords, res.MatchedCount+res.MissingCount)
	assert.Contains(t, res.MatchedKeywords, "python")
	assert.Contains(t, res.MatchedKeywords, "django")
	assert.Contains(t, res.MissingKeywords, "docker")
	assert.Equal(t, res.MatchedCount*100/res.TotalKeywords, res.Score)
}

func TestMatchScoreWordBoundaries(t *testing.T) {
	t.Parallel()
	a := &Analyzer{}
	res := a.MatchScore("javascript expert", "Java. Java")
	assert.Equal(t, []string{"java"}, res.MissingKeywords)
	assert.Equal(t, 0, res.Score)

	res = a.MatchScore("Java, Spring", "Java. Java")
	assert.Equal(t, 100, res.Score)
}

func TestMatchScoreEmptyInputs(t *testing.T) {
	t.Parallel()
	a := &Analyzer{}
	want := MatchResult{MatchedKeywords: []string{}, MissingKeywords: []string{}}
	assert.Equal(t, want, a.MatchScore("", "Go developer"))
	assert.Equal(t, want, a.MatchScore("Go developer", ""))
	assert.Equal(t, want, a.MatchScore("Go developer", "the and of"))
}

func TestContainsWordHandlesPunctuatedTerms(t *testing.T) {
	cases := []struct {
		haystack, word string
		want           bool
	}{
		{"writes c++ daily", "c++", true},
		{"based in the u.s. office", "u.s.", true},
		{"ships rust services", "rust", true},
		{"rusty tooling", "rust", false},
		{"c++17 codebase", "c++", false},
		{"trust", "rust", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, containsWord(tc.haystack, tc.word), "%q in %q", tc.word, tc.haystack)
	}
}

func TestMatchScoreWhitespaceOnlyInputIsEmpty(t *testing.T) {
	a := &Analyzer{Entities: stubEntities{}}
	result := a.MatchScore("   \n\t", "Rust engineer")
	assert.Zero(t, result.Score)
	assert.Empty(t, result.MatchedKeywords)
	assert.Empty(t, result.MissingKeywords)
	assert.Zero(t, result.TotalKeywords)
}
