package vector

import "sort"

// Candidate is an id paired with its embedding, considered for ranking.
type Candidate struct {
	ID        string
	Embedding []float64
}

// Ranked is a scored candidate produced by Rank.
type Ranked struct {
	ID    string
	Score float64
}

// Rank scores every candidate against the query vector and returns
// them ordered by descending cosine similarity. Candidates without an
// embedding are excluded before scoring, never scored as zero and
// kept. The sort is stable: exact ties preserve retrieval order.
// Truncation to a top-K is the caller's concern.
func Rank(query []float64, candidates []Candidate) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) == 0 {
			continue
		}
		ranked = append(ranked, Ranked{ID: c.ID, Score: Cosine(query, c.Embedding)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
