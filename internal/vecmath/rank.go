package vecmath

import "sort"

// Candidate is a scored record. Seq is its insertion sequence.
type Candidate struct {
	Seq   int64
	Score float64
}

// TopK orders candidates by descending score, then ascending Seq,
// and returns at most k of them. The input slice is reordered.
func TopK(cands []Candidate, k int) []Candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Seq < cands[j].Seq
	})
	if k >= 0 && len(cands) > k {
		cands = cands[:k]
	}
	return cands
}
