package evaluation

import "math"

// AnswerSet maps question ID to its normalized answer value.
type AnswerSet map[string]float64

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Result holds the computed per-dimension and overall scores, all on a 0-100
// scale rounded to one decimal.
type Result struct {
	DimensionScores map[string]float64 `json:"dimension_scores"`
	TotalScore      float64            `json:"total_score"`
}

// Score computes per-dimension and overall scores for an answer set.
//
// Each dimension score is the mean of its questions' answers divided by the
// dimension's total question count; a question missing from the answer set
// contributes 0. The total is the mean of the unrounded dimension averages.
// Rounding to one decimal happens exactly twice: once per dimension and once
// for the total. Pure function; safe to call concurrently.
func Score(r Rubric, answers AnswerSet) Result {
	dims := make(map[string]float64, len(r.Dimensions))
	sumAvg := 0.0
	for _, d := range r.Dimensions {
		sum := 0.0
		for _, q := range d.Questions {
			sum += answers[q.ID]
		}
		avg := sum / float64(len(d.Questions))
		dims[d.ID] = round1(avg)
		sumAvg += avg
	}
	return Result{
		DimensionScores: dims,
		TotalScore:      round1(sumAvg / float64(len(r.Dimensions))),
	}
}

// round1 rounds to one decimal, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
