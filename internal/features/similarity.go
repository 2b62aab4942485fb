package features

import (
	"cmp"
	"math"
	"slices"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// Cosine returns the cosine similarity of a and b in [-1, 1]. Vectors of
// different length or with zero magnitude have similarity 0.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	s := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return max(-1, min(1, s))
}

// Match is one ranked similarity result.
type Match struct {
	Processor  models.Processor `json:"processor"`
	Similarity float64          `json:"similarity"`
}

// Rank scores every candidate against ref and returns them by similarity
// descending, then price ascending, then name ascending. Candidates
// sharing ref's name are skipped.
func (n *Normalizer) Rank(ref *models.Processor, candidates []models.Processor) []Match {
	refVec := n.Transform(ref)
	out := make([]Match, 0, len(candidates))
	for i := range candidates {
		if candidates[i].Name == ref.Name {
			continue
		}
		out = append(out, Match{
			Processor:  candidates[i],
			Similarity: Cosine(refVec, n.Transform(&candidates[i])),
		})
	}

	slices.SortStableFunc(out, func(a, b Match) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Processor.Price, b.Processor.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.Processor.Name, b.Processor.Name)
	})
	return out
}
