package semantic

import "sort"

// RRFConstant is spec §4.6's fixed fusion constant k = 60.
const RRFConstant = 60

// FusedHit is one row of a rank-fused result list.
type FusedHit struct {
	SymbolID int64
	Score    float64
}

// ReciprocalRankFuse merges any number of ranked symbol-ID lists (already
// sorted best-first) into one fused ranking: score = Σ 1/(k + rank) over
// every list the symbol appears in, rank 1-based. A symbol present in
// only one list is kept — it is simply outscored by symbols the lists
// agree on. Deterministic for a fixed set of input lists (ties broken by
// symbol ID) per the ordering guarantee in spec §4.6.
func ReciprocalRankFuse(lists ...[]int64) []FusedHit {
	scores := map[int64]float64{}
	order := make([]int64, 0)
	for _, list := range lists {
		for rank, id := range list {
			if _, seen := scores[id]; !seen {
				order = append(order, id)
			}
			scores[id] += 1.0 / float64(RRFConstant+rank+1)
		}
	}

	hits := make([]FusedHit, len(order))
	for i, id := range order {
		hits[i] = FusedHit{SymbolID: id, Score: scores[id]}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].SymbolID < hits[j].SymbolID
	})
	return hits
}
