package evaluation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectpulse/projectpulse/internal/audit"
	"github.com/projectpulse/projectpulse/internal/evaluation"
)

/* ---------------- In-memory fakes satisfying evaluation.Store & evaluation.EventSink ---------------- */

type fakeStore struct {
	evals     map[string]evaluation.Evaluation
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{evals: map[string]evaluation.Evaluation{}}
}

func (s *fakeStore) Create(_ context.Context, ev evaluation.Evaluation) (evaluation.Evaluation, error) {
	if s.createErr != nil {
		return evaluation.Evaluation{}, s.createErr
	}
	s.evals[ev.ID] = ev
	return ev, nil
}

func (s *fakeStore) Update(_ context.Context, ev evaluation.Evaluation) (evaluation.Evaluation, error) {
	if s.updateErr != nil {
		return evaluation.Evaluation{}, s.updateErr
	}
	if _, ok := s.evals[ev.ID]; !ok {
		return evaluation.Evaluation{}, evaluation.ErrNotFound
	}
	s.evals[ev.ID] = ev
	return ev, nil
}

func (s *fakeStore) Get(_ context.Context, id string) (evaluation.Evaluation, error) {
	ev, ok := s.evals[id]
	if !ok {
		return evaluation.Evaluation{}, evaluation.ErrNotFound
	}
	return ev, nil
}

func (s *fakeStore) ListByProject(_ context.Context, projectID string, _, _ int) ([]evaluation.Evaluation, error) {
	out := []evaluation.Evaluation{}
	for _, ev := range s.evals {
		if ev.ProjectID == projectID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.evals[id]; !ok {
		return evaluation.ErrNotFound
	}
	delete(s.evals, id)
	return nil
}

type fakeSink struct{ events []audit.Event }

func (f *fakeSink) Append(_ context.Context, e audit.Event) error {
	f.events = append(f.events, e)
	return nil
}

func newService(st *fakeStore, sink evaluation.EventSink) *evaluation.Service {
	fixed := time.Unix(1700000000, 0)
	return evaluation.NewService(testRubric(), st, sink, func() time.Time { return fixed })
}

/* ------------------------------------------ Tests ------------------------------------------ */

func TestSubmitScoresAndPersists(t *testing.T) {
	st, sink := newFakeStore(), &fakeSink{}
	svc := newService(st, sink)

	ev, err := svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID:     "p1",
		EvaluatorName: "Dana",
		Answers:       completeAnswers(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "p1", ev.ProjectID)
	assert.Equal(t, 90.0, ev.DimensionScores["quality"])
	assert.Equal(t, 20.0, ev.DimensionScores["delivery"])
	assert.Equal(t, 55.0, ev.TotalScore)
	assert.Equal(t, int64(1700000000), ev.CreatedAt)
	assert.Equal(t, ev.CreatedAt, ev.UpdatedAt)

	require.Len(t, st.evals, 1)
	require.Len(t, sink.events, 1)
	assert.Equal(t, audit.TypeEvaluationSubmitted, sink.events[0].Type)
	assert.Equal(t, ev.ID, sink.events[0].Key)
}

func TestSubmitRejectsIncomplete(t *testing.T) {
	st, sink := newFakeStore(), &fakeSink{}
	svc := newService(st, sink)

	answers := completeAnswers()
	delete(answers, "delivery_smooth")

	_, err := svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID: "p1", EvaluatorName: "Dana", Answers: answers,
	})
	assert.ErrorIs(t, err, evaluation.ErrIncompleteEvaluation)
	assert.Empty(t, st.evals, "nothing persisted on validation failure")
	assert.Empty(t, sink.events)
}

func TestSubmitRejectsBadAnswers(t *testing.T) {
	svc := newService(newFakeStore(), &fakeSink{})

	bad := completeAnswers()
	bad["quality_met_bar"] = 70
	_, err := svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID: "p1", EvaluatorName: "Dana", Answers: bad,
	})
	assert.ErrorIs(t, err, evaluation.ErrInvalidAnswerValue)

	ghost := completeAnswers()
	ghost["ghost_question"] = 100
	_, err = svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID: "p1", EvaluatorName: "Dana", Answers: ghost,
	})
	assert.ErrorIs(t, err, evaluation.ErrUnknownQuestion)
}

func TestSubmitStoreFailureKeepsDraftRetryable(t *testing.T) {
	st, sink := newFakeStore(), &fakeSink{}
	st.createErr = errors.New("connection reset")
	svc := newService(st, sink)

	in := evaluation.SubmitInput{ProjectID: "p1", EvaluatorName: "Dana", Answers: completeAnswers()}
	_, err := svc.Submit(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, sink.events, "no audit event for a failed write")

	// retry with the same draft succeeds once the store recovers
	st.createErr = nil
	ev, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 55.0, ev.TotalScore)
}

func TestReplaceRescoresWholesale(t *testing.T) {
	st, sink := newFakeStore(), &fakeSink{}
	svc := newService(st, sink)

	ev, err := svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID: "p1", EvaluatorName: "Dana", Answers: completeAnswers(),
	})
	require.NoError(t, err)

	edited := completeAnswers()
	edited["delivery_on_time"] = 100
	edited["delivery_smooth"] = 100

	got, err := svc.Replace(context.Background(), ev.ID, evaluation.ReplaceInput{
		EvaluatorName: "Dana E.",
		Answers:       edited,
	})
	require.NoError(t, err)

	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, ev.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Dana E.", got.EvaluatorName)
	assert.Equal(t, 100.0, got.DimensionScores["delivery"])
	assert.Equal(t, 95.0, got.TotalScore)

	require.Len(t, sink.events, 2)
	assert.Equal(t, audit.TypeEvaluationReplaced, sink.events[1].Type)
}

func TestReplaceMissingEvaluation(t *testing.T) {
	svc := newService(newFakeStore(), &fakeSink{})
	_, err := svc.Replace(context.Background(), "gone", evaluation.ReplaceInput{
		EvaluatorName: "Dana", Answers: completeAnswers(),
	})
	assert.ErrorIs(t, err, evaluation.ErrNotFound)
}

func TestDeleteEmitsEvent(t *testing.T) {
	st, sink := newFakeStore(), &fakeSink{}
	svc := newService(st, sink)

	ev, err := svc.Submit(context.Background(), evaluation.SubmitInput{
		ProjectID: "p1", EvaluatorName: "Dana", Answers: completeAnswers(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ev.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), ev.ID), evaluation.ErrNotFound)

	require.Len(t, sink.events, 2)
	assert.Equal(t, audit.TypeEvaluationDeleted, sink.events[1].Type)
}

func TestProjectSummaryAveragesStoredScores(t *testing.T) {
	st := newFakeStore()
	svc := newService(st, nil)

	// Seed records whose stored scores deliberately disagree with what
	// rescoring their answers would produce: the summary must reflect the
	// persisted values, never recompute.
	st.evals["e1"] = evaluation.Evaluation{
		ID: "e1", ProjectID: "p1",
		Answers:         evaluation.AnswerSet{},
		DimensionScores: map[string]float64{"quality": 80, "delivery": 60},
		TotalScore:      70,
	}
	st.evals["e2"] = evaluation.Evaluation{
		ID: "e2", ProjectID: "p1",
		Answers:         evaluation.AnswerSet{},
		DimensionScores: map[string]float64{"quality": 90, "delivery": 30},
		TotalScore:      60,
	}
	st.evals["other"] = evaluation.Evaluation{
		ID: "other", ProjectID: "p2",
		DimensionScores: map[string]float64{"quality": 0, "delivery": 0},
	}

	sum, err := svc.ProjectSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 85.0, sum.DimensionAverages["quality"])
	assert.Equal(t, 45.0, sum.DimensionAverages["delivery"])
	assert.Equal(t, 65.0, sum.AverageTotal)
}

func TestProjectSummaryEmpty(t *testing.T) {
	svc := newService(newFakeStore(), nil)
	sum, err := svc.ProjectSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Count)
	assert.Empty(t, sum.DimensionAverages)
	assert.Equal(t, 0.0, sum.AverageTotal)
}
