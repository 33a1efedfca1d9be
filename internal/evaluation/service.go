package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/projectpulse/projectpulse/internal/audit"
)

// EventSink receives audit events. Satisfied by *audit.EventRepo; nil disables
// auditing.
type EventSink interface {
	Append(ctx context.Context, e audit.Event) error
}

// Service owns the evaluation lifecycle: validate answers, score, persist.
// Scoring and persistence happen as one submit operation; if the store write
// fails the caller's draft is untouched and can be retried.
type Service struct {
	rubric Rubric
	store  Store
	events EventSink
	now    func() time.Time
}

func NewService(rubric Rubric, store Store, events EventSink, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{rubric: rubric, store: store, events: events, now: now}
}

// Rubric returns the taxonomy this service scores against.
func (s *Service) Rubric() Rubric { return s.rubric }

type SubmitInput struct {
	ProjectID     string
	EvaluatorName string
	Answers       AnswerSet
}

// Submit validates the answer set against the rubric, computes scores and
// writes exactly one evaluation record.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Evaluation, error) {
	answers, err := s.validate(in.Answers)
	if err != nil {
		return Evaluation{}, err
	}
	res := Score(s.rubric, answers)
	now := s.now().Unix()
	ev := Evaluation{
		ID:              uuid.NewString(),
		ProjectID:       in.ProjectID,
		EvaluatorName:   in.EvaluatorName,
		Answers:         answers,
		DimensionScores: res.DimensionScores,
		TotalScore:      res.TotalScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	stored, err := s.store.Create(ctx, ev)
	if err != nil {
		return Evaluation{}, err
	}
	s.audit(ctx, audit.TypeEvaluationSubmitted, stored)
	return stored, nil
}

type ReplaceInput struct {
	EvaluatorName string
	Answers       AnswerSet
}

// Replace re-scores an edited answer set and replaces the stored record
// wholesale. CreatedAt is preserved; no field-level merge, no score history.
func (s *Service) Replace(ctx context.Context, id string, in ReplaceInput) (Evaluation, error) {
	prev, err := s.store.Get(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	answers, err := s.validate(in.Answers)
	if err != nil {
		return Evaluation{}, err
	}
	res := Score(s.rubric, answers)
	ev := Evaluation{
		ID:              prev.ID,
		ProjectID:       prev.ProjectID,
		EvaluatorName:   in.EvaluatorName,
		Answers:         answers,
		DimensionScores: res.DimensionScores,
		TotalScore:      res.TotalScore,
		CreatedAt:       prev.CreatedAt,
		UpdatedAt:       s.now().Unix(),
	}
	stored, err := s.store.Update(ctx, ev)
	if err != nil {
		return Evaluation{}, err
	}
	s.audit(ctx, audit.TypeEvaluationReplaced, stored)
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id string) (Evaluation, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]Evaluation, error) {
	return s.store.ListByProject(ctx, projectID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, audit.TypeEvaluationDeleted, Evaluation{ID: id})
	return nil
}

// ProjectSummary averages the stored scores across a project's evaluations.
// Individual records are never rescored here; what was persisted at submit
// time is what gets aggregated.
func (s *Service) ProjectSummary(ctx context.Context, projectID string) (Summary, error) {
	evs, err := s.store.ListByProject(ctx, projectID, 0, 0)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		ProjectID:         projectID,
		Count:             len(evs),
		DimensionAverages: map[string]float64{},
	}
	if len(evs) == 0 {
		return sum, nil
	}
	dimTotals := map[string]float64{}
	totalSum := 0.0
	for _, ev := range evs {
		totalSum += ev.TotalScore
		for id, v := range ev.DimensionScores {
			dimTotals[id] += v
		}
	}
	n := float64(len(evs))
	for id, t := range dimTotals {
		sum.DimensionAverages[id] = round1(t / n)
	}
	sum.AverageTotal = round1(totalSum / n)
	return sum, nil
}

// validate runs the full answer set through a fresh draft: every ID must be a
// rubric question, every value in-domain, and every question answered.
func (s *Service) validate(answers AnswerSet) (AnswerSet, error) {
	d := NewDraft(s.rubric)
	for id, v := range answers {
		if err := d.RecordAnswer(id, v); err != nil {
			return nil, err
		}
	}
	if !d.Complete() {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteEvaluation, d.Missing())
	}
	return d.Answers(), nil
}

func (s *Service) audit(ctx context.Context, typ string, ev Evaluation) {
	if s.events == nil {
		return
	}
	data, _ := json.Marshal(map[string]any{
		"project_id":  ev.ProjectID,
		"total_score": ev.TotalScore,
	})
	if err := s.events.Append(ctx, audit.Event{Type: typ, Key: ev.ID, DataJSON: string(data)}); err != nil {
		log.Printf("audit append %s: %v", typ, err)
	}
}
