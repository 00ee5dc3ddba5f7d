package semantic

import (
	"context"
	"sort"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

// FTSTopK and FusedTopK are spec §4.6's default K values for the two
// search stages.
const (
	FTSTopK   = 50
	FusedTopK = 50
)

// Searcher runs semantic_search against whichever retrieval mechanisms
// are available, per the degradation ladder:
//   - no embeddings, no reranker -> FTS only
//   - reranker only              -> FTS re-ordered by the reranker
//   - embeddings + reranker      -> full hybrid (FTS + vector + RRF + rerank)
//
// Every tier is reachable through the same Search signature.
type Searcher struct {
	Store    *store.Store
	Index    *VectorIndex // nil disables the vector tier
	Model    EmbeddingModel
	Reranker Reranker // nil disables the rerank tier
}

// Search runs semantic_search(query, kind?, limit) — spec §4.6 — against
// the highest tier the current configuration supports.
func (sr *Searcher) Search(ctx context.Context, query, kindFilter string, limit int) ([]api.SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	ftsHits, err := sr.Store.SearchFTS(query, FTSTopK)
	if err != nil {
		return nil, err
	}

	var fused []FusedHit
	if sr.Index != nil && sr.Index.Len() > 0 && sr.Model != nil {
		vecs, err := sr.Model.Embed(ctx, []string{query})
		if err == nil && len(vecs) == 1 {
			vecHits := sr.Index.Search(vecs[0], FTSTopK)
			fused = ReciprocalRankFuse(idsOf(ftsHits), vecIDsOf(vecHits))
		}
	}
	if fused == nil {
		// Vector tier unavailable: fall back to the FTS list alone, still
		// run through fusion so downstream code has one shape to handle.
		fused = ReciprocalRankFuse(idsOf(ftsHits))
	}
	if len(fused) > FusedTopK {
		fused = fused[:FusedTopK]
	}

	symbols, contents, rrfScores, err := sr.loadSymbols(fused)
	if err != nil {
		return nil, err
	}

	if sr.Reranker != nil {
		scores, err := sr.Reranker.Rerank(ctx, query, contents)
		if err == nil && len(scores) == len(symbols) {
			return sr.buildHits(symbols, rrfScores, scores, kindFilter, limit, true), nil
		}
		// Reranker failed or mismatched: degrade silently to fused order.
	}
	return sr.buildHits(symbols, rrfScores, nil, kindFilter, limit, false), nil
}

func (sr *Searcher) loadSymbols(fused []FusedHit) ([]api.Symbol, []string, []float64, error) {
	symbols := make([]api.Symbol, 0, len(fused))
	contents := make([]string, 0, len(fused))
	rrfScores := make([]float64, 0, len(fused))
	for _, f := range fused {
		sym, err := sr.Store.SymbolByID(f.SymbolID)
		if err != nil {
			return nil, nil, nil, err
		}
		if sym == nil {
			continue
		}
		symbols = append(symbols, *sym)
		contents = append(contents, sym.Content)
		rrfScores = append(rrfScores, f.Score)
	}
	return symbols, contents, rrfScores, nil
}

func (sr *Searcher) buildHits(symbols []api.Symbol, rrfScores, rerankScores []float64, kindFilter string, limit int, reranked bool) []api.SearchHit {
	type scored struct {
		sym   api.Symbol
		rrf   float64
		rerank float64
	}
	rows := make([]scored, 0, len(symbols))
	for i, sym := range symbols {
		if kindFilter != "" && string(sym.Kind) != kindFilter {
			continue
		}
		r := scored{sym: sym, rrf: rrfScores[i]}
		if reranked {
			r.rerank = rerankScores[i]
		}
		rows = append(rows, r)
	}
	if reranked {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].rerank > rows[j].rerank })
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	fc := fileCacher{s: sr.Store, paths: map[int64]string{}}
	hits := make([]api.SearchHit, len(rows))
	for i, r := range rows {
		hits[i] = api.SearchHit{
			Symbol: api.SymbolRow{
				Kind:      r.sym.Kind,
				Name:      r.sym.Name,
				File:      fc.pathOf(r.sym.FileID),
				StartLine: r.sym.StartLine,
				EndLine:   r.sym.EndLine,
				Signature: r.sym.Signature,
			},
		}
		rrf := r.rrf
		hits[i].Score = &rrf
		if reranked {
			rs := r.rerank
			hits[i].RerankScore = &rs
		}
	}
	return hits
}

func idsOf(hits []store.FTSHit) []int64 {
	out := make([]int64, len(hits))
	for i, h := range hits {
		out[i] = h.SymbolID
	}
	return out
}

func vecIDsOf(hits []VectorHit) []int64 {
	out := make([]int64, len(hits))
	for i, h := range hits {
		out[i] = h.SymbolID
	}
	return out
}

// fileCacher mirrors internal/query's fileCache — duplicated rather
// than imported to keep internal/semantic from depending on
// internal/query for a three-line memoization helper.
type fileCacher struct {
	s     *store.Store
	paths map[int64]string
}

func (c *fileCacher) pathOf(fileID int64) string {
	if p, ok := c.paths[fileID]; ok {
		return p
	}
	p := ""
	if fi, err := c.s.FileByID(fileID); err == nil && fi != nil {
		p = fi.Path
	}
	c.paths[fileID] = p
	return p
}
