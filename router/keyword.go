package router

import (
	"strings"

	"github.com/hupe1980/homemesh/core"
)

// stopwords are tokens that carry no routing signal in either the input or
// the capability summaries.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "any": true, "are": true, "can": true,
	"for": true, "in": true, "is": true, "it": true, "my": true, "of": true,
	"or": true, "please": true, "that": true, "the": true, "this": true,
	"to": true, "with": true, "you": true,
}

// KeywordScorer is the in-tree default scoring strategy: confidence is the
// fraction of the input's content tokens that appear in the agent's
// capability summary or skill list. It involves no model calls and is fully
// deterministic; production deployments typically swap in one of the
// model-backed scorers.
type KeywordScorer struct{}

// NewKeywordScorer constructs the default keyword scoring strategy.
func NewKeywordScorer() KeywordScorer { return KeywordScorer{} }

// Score implements Scorer. Tokens are lowercased, stripped of punctuation
// and matched in singular form, so "lights" matches a summary mentioning
// "light".
func (KeywordScorer) Score(input string, descriptor core.AgentDescriptor) float64 {
	terms := make(map[string]bool)
	for _, token := range tokenize(descriptor.Description) {
		terms[token] = true
	}
	for _, skill := range descriptor.Skills {
		for _, token := range tokenize(skill) {
			terms[token] = true
		}
	}

	tokens := tokenize(input)
	if len(tokens) == 0 || len(terms) == 0 {
		return 0
	}

	matched := 0
	for _, token := range tokens {
		if terms[token] {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

// tokenize splits text into normalized content tokens: lowercased, trimmed
// of punctuation, singularized and filtered of stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := singular(field)
		if token == "" || stopwords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func singular(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") {
		return token[:len(token)-1]
	}
	return token
}
