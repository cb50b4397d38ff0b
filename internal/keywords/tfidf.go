package keywords

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the TF-IDF vocabulary size.
const DefaultMaxFeatures = 100

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TermScore is a vocabulary term with its summed TF-IDF weight.
type TermScore struct {
	Term  string
	Score float64
}

// Tokenize lowercases text, keeps runs of two or more word characters, and
// drops stop words.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if !IsStopWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// terms returns the unigrams and bigrams of a document.
func terms(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Sentences splits text into the mini-corpus TF-IDF runs over: sentences on
// ".", or lines when there are fewer than two sentences. Blank pieces are dropped.
func Sentences(text string) []string {
	docs := nonBlank(strings.Split(text, "."))
	if len(docs) < 2 {
		docs = nonBlank(strings.Split(text, "\n"))
	}
	return docs
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TFIDF scores terms across docs with smoothed IDF and L2-normalized rows,
// then sums each term's weight over all rows. Results are sorted by score
// descending, ties alphabetically.
func TFIDF(docs []string, maxFeatures int) []TermScore {
	if len(docs) == 0 {
		return nil
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	counts := make([]map[string]int, len(docs))
	corpusFreq := map[string]int{}
	docFreq := map[string]int{}
	for i, doc := range docs {
		row := map[string]int{}
		for _, term := range terms(doc) {
			row[term]++
			corpusFreq[term]++
		}
		for term := range row {
			docFreq[term]++
		}
		counts[i] = row
	}
	if len(corpusFreq) == 0 {
		return nil
	}

	vocab := topByFrequency(corpusFreq, maxFeatures)

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for _, term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	sums := make(map[string]float64, len(vocab))
	for _, row := range counts {
		weights := make(map[string]float64, len(row))
		var norm float64
		for _, term := range vocab {
			tf, ok := row[term]
			if !ok {
				continue
			}
			w := float64(tf) * idf[term]
			weights[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			sums[term] += w / norm
		}
	}

	scores := make([]TermScore, 0, len(vocab))
	for _, term := range vocab {
		scores = append(scores, TermScore{Term: term, Score: sums[term]})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Term < scores[j].Term
	})
	return scores
}

func topByFrequency(freq map[string]int, limit int) []string {
	all := make([]string, 0, len(freq))
	for term := range freq {
		all = append(all, term)
	}
	sort.Slice(all, func(i, j int) bool {
		if freq[all[i]] != freq[all[j]] {
			return freq[all[i]] > freq[all[j]]
		}
		return all[i] < all[j]
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
