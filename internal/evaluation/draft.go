package evaluation

import "fmt"

// Draft is one evaluator's in-progress answer set for a single evaluation.
// It is not safe for concurrent use; each editing session owns its own draft.
type Draft struct {
	rubric  Rubric
	answers AnswerSet
}

func NewDraft(r Rubric) *Draft {
	return &Draft{rubric: r, answers: AnswerSet{}}
}

// ResumeDraft starts a draft pre-loaded with previously stored answers, for
// editing an existing evaluation. Stored answers are validated the same way
// RecordAnswer validates fresh ones.
func ResumeDraft(r Rubric, answers AnswerSet) (*Draft, error) {
	d := NewDraft(r)
	for id, v := range answers {
		if err := d.RecordAnswer(id, v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// RecordAnswer upserts the value for a question. The question must exist in
// the rubric and the value must be in the domain for its type.
func (d *Draft) RecordAnswer(questionID string, value float64) error {
	q, ok := d.rubric.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if !q.Type.ValidValue(value) {
		return fmt.Errorf("%w: %v for %s question %q", ErrInvalidAnswerValue, value, q.Type, questionID)
	}
	d.answers[questionID] = value
	return nil
}

// Answer returns the recorded value for a question, if any.
func (d *Draft) Answer(questionID string) (float64, bool) {
	v, ok := d.answers[questionID]
	return v, ok
}

// IsDimensionComplete reports whether every question in the dimension has been
// answered. This is the only sequencing rule: dimensions may be completed in
// any order, but all must be complete before submission.
func (d *Draft) IsDimensionComplete(dim Dimension) bool {
	for _, q := range dim.Questions {
		if _, ok := d.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Complete reports whether every dimension of the rubric is complete.
func (d *Draft) Complete() bool {
	for _, dim := range d.rubric.Dimensions {
		if !d.IsDimensionComplete(dim) {
			return false
		}
	}
	return true
}

// Missing lists the question IDs still unanswered, in rubric order.
func (d *Draft) Missing() []string {
	var out []string
	for _, dim := range d.rubric.Dimensions {
		for _, q := range dim.Questions {
			if _, ok := d.answers[q.ID]; !ok {
				out = append(out, q.ID)
			}
		}
	}
	return out
}

// Answers returns a copy of the current answer set; the draft keeps ownership
// of its internal map.
func (d *Draft) Answers() AnswerSet {
	return d.answers.Clone()
}
