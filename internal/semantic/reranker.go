package semantic

import (
	"context"
)

// Reranker scores a batch of (query, doc) pairs in one call — spec
// §4.6's optional cross-encoder step. Never block on its absence; a nil
// Searcher.Reranker is valid and Searcher.Search simply skips the step.
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []string) ([]float64, error)
}

// LexicalOverlapReranker is the bundled default: it scores each doc by
// the fraction of query tokens it contains, a cheap stand-in for a real
// cross-encoder that re-orders the fused list by overlap with each
// symbol's full content.
type LexicalOverlapReranker struct{}

func (LexicalOverlapReranker) Rerank(_ context.Context, query string, docs []string) ([]float64, error) {
	qTokens := tokenSet(query)
	scores := make([]float64, len(docs))
	if len(qTokens) == 0 {
		return scores, nil
	}
	for i, d := range docs {
		dTokens := tokenSet(d)
		if len(dTokens) == 0 {
			continue
		}
		hit := 0
		for t := range qTokens {
			if dTokens[t] {
				hit++
			}
		}
		scores[i] = float64(hit) / float64(len(qTokens))
	}
	return scores, nil
}

func tokenSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range tokenize(text) {
		set[tok] = true
	}
	return set
}
