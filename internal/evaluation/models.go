package evaluation

// Evaluation is one scored, persisted instance of answering the rubric for a
// project. Scores are computed on submit and never recomputed on read; editing
// replaces the record wholesale.
type Evaluation struct {
	ID              string             `json:"id"`
	ProjectID       string             `json:"project_id"`
	EvaluatorName   string             `json:"evaluator_name"`
	Answers         AnswerSet          `json:"answers"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	TotalScore      float64            `json:"total_score"`
	CreatedAt       int64              `json:"created_at"`
	UpdatedAt       int64              `json:"updated_at"`
}

// Summary is the aggregate read view over a project's evaluations, backing
// the radar chart and breakdown list. Averages are taken over the stored
// per-record scores, not recomputed from answers.
type Summary struct {
	ProjectID         string             `json:"project_id"`
	Count             int                `json:"count"`
	DimensionAverages map[string]float64 `json:"dimension_averages"`
	AverageTotal      float64            `json:"average_total"`
}
