package keywords

import (
	"strings"

	"github.com/jdkato/prose/v2"

	"resume-optimizer/internal/shared/telemetry"
)

// Entity is a named entity found in text.
type Entity struct {
	Text  string
	Label string
}

// EntityExtractor finds named entities in text.
type EntityExtractor interface {
	Entities(text string) ([]Entity, error)
}

var keptLabels = map[string]bool{
	"ORG":     true,
	"PRODUCT": true,
	"GPE":     true,
	"PERSON":  true,
	"NORP":    true,
}

// ProseExtractor runs prose's tagger and named-entity model.
type ProseExtractor struct{}

func (ProseExtractor) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		out = append(out, Entity{Text: e.Text, Label: e.Label})
	}
	return out, nil
}

// entityKeywords returns lowercased, deduplicated entity texts with a kept
// label. Extractor failures are logged and yield no keywords.
func entityKeywords(extractor EntityExtractor, text string) []string {
	if extractor == nil {
		return nil
	}
	ents, err := extractor.Entities(text)
	if err != nil {
		telemetry.Warn("keywords.ner_failed", map[string]any{"error": err.Error()})
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range ents {
		if !keptLabels[e.Label] {
			continue
		}
		kw := strings.ToLower(strings.TrimSpace(e.Text))
		if len([]rune(kw)) <= 1 || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
