// Package semantic implements spec §4.6's three-mechanism hybrid search:
// full-text (delegated to internal/store's fts_symbols table), dense
// vector (this package's in-memory VectorIndex), reciprocal-rank fusion,
// and an optional re-rank pass — behind the degradation ladder in
// search.go so the same Searcher.Search call works with any subset of
// those mechanisms available.
package semantic

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// EmbeddingModel turns text into fixed-width vectors. The only bundled
// implementation is HashingEmbedder; a real neural model can be dropped
// in behind this interface without touching any caller, using the model
// cache resolved by internal/semantic/model.
type EmbeddingModel interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dim() int
}

// HashingEmbedder is a deterministic feature-hashing vectorizer: it
// tokenizes into word n-grams, hashes each into a bucket of a fixed-width
// vector, and L2-normalizes the result. It needs no model file and no
// network access, so it is always available — the floor of the
// degradation ladder's vector tier.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns an embedder producing vectors of width dim.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &HashingEmbedder{dim: dim}
}

func (h *HashingEmbedder) Dim() int { return h.dim }

func (h *HashingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = h.embedOne(t)
	}
	return out, nil
}

func (h *HashingEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, h.dim)
	for _, tok := range tokenize(text) {
		bucket, sign := hashToken(tok, h.dim)
		vec[bucket] += sign
	}
	normalize(vec)
	return vec
}

// tokenize lowercases and splits on anything that isn't a letter or
// digit, then emits both unigrams and bigrams. CamelCase is not split:
// "getUser" is the single token "getuser", while "get_user" yields "get",
// "user" and the bigram "get_user".
func tokenize(text string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	tokens := make([]string, 0, 2*len(words))
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+"_"+words[i+1])
	}
	return tokens
}

// hashToken maps a token to a bucket index and a +1/-1 sign, the
// standard feature-hashing trick (Weinberger et al.) that keeps
// collisions from systematically biasing any one dimension positive.
func hashToken(tok string, dim int) (bucket int, sign float32) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tok))
	sum := h.Sum32()
	bucket = int(sum % uint32(dim))
	if sum&0x10000 != 0 {
		sign = -1
	} else {
		sign = 1
	}
	return bucket, sign
}

func normalize(v []float32) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range v {
		v[i] /= norm
	}
}
