package semantic

import (
	"math"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"

	"github.com/agentic-research/codegraph/api"
)

// VectorIndex keeps every symbol embedding resident in memory and
// answers top-K queries by brute-force cosine distance — the same
// scan-and-rank shape as cagent's SearchSimilarVectors, minus the SQL
// backing. Proportionate to a single-repo, single-machine index; an ANN
// library would be the right call at a corpus size this isn't built for.
type VectorIndex struct {
	mu      sync.RWMutex
	ids     []int64
	vectors [][]float32
	byID    map[int64]int // symbol id -> index into ids/vectors
	present *roaring.Bitmap
}

// NewVectorIndex returns an empty index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{byID: map[int64]int{}, present: roaring.New()}
}

// LoadFromStore populates the index from every persisted embedding —
// called once at process start (spec §4.6's "resident" requirement).
func LoadFromStore(records []api.EmbeddingRecord) *VectorIndex {
	idx := NewVectorIndex()
	for _, r := range records {
		idx.Put(r.SymbolID, r.Vector)
	}
	return idx
}

// Put inserts or replaces the vector for symbolID.
func (v *VectorIndex) Put(symbolID int64, vec []float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i, ok := v.byID[symbolID]; ok {
		v.vectors[i] = vec
		return
	}
	v.ids = append(v.ids, symbolID)
	v.vectors = append(v.vectors, vec)
	v.byID[symbolID] = len(v.ids) - 1
	v.present.Add(uint32(symbolID))
}

// Remove drops symbolID from the index (a deleted or re-kinded symbol).
// The backing slices are left with a hole rather than compacted — cheap
// at this scale, and Has/Len stay correct via the bitmap and byID map.
func (v *VectorIndex) Remove(symbolID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i, ok := v.byID[symbolID]
	if !ok {
		return
	}
	v.vectors[i] = nil
	delete(v.byID, symbolID)
	v.present.Remove(uint32(symbolID))
}

// Has reports whether symbolID currently has a vector.
func (v *VectorIndex) Has(symbolID int64) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.present.Contains(uint32(symbolID))
}

// Len returns the number of vectors currently held.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return int(v.present.GetCardinality())
}

// VectorHit is one search result: symbol ID plus cosine distance
// (ascending — 0 is an exact match, 2 is opposite).
type VectorHit struct {
	SymbolID int64
	Distance float64
}

// Search returns the topK nearest vectors to query by cosine distance,
// ascending. An empty query or a non-positive topK returns nil, and an
// empty index returns no hits; neither is an error.
func (v *VectorIndex) Search(query []float32, topK int) []VectorHit {
	if len(query) == 0 || topK <= 0 {
		return nil
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	hits := make([]VectorHit, 0, len(v.ids))
	for i, vec := range v.vectors {
		if vec == nil {
			continue
		}
		hits = append(hits, VectorHit{SymbolID: v.ids[i], Distance: cosineDistance(query, vec)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// cosineDistance is 1 - cosine similarity. Mismatched dimensions (a
// model swap mid-process) are treated as maximally dissimilar rather
// than panicking.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 2
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return 1 - sim
}
