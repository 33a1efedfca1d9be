package evaluation

import (
	"errors"
	"fmt"
)

// QuestionType selects the valid answer domain for a question.
type QuestionType string

const (
	TypeBoolean QuestionType = "boolean" // answered 0 (no) or 100 (yes)
	TypeLikert  QuestionType = "likert"  // 5-point scale stored as 20/40/60/80/100
)

// ValidValue reports whether v is a legal answer for this question type.
func (t QuestionType) ValidValue(v float64) bool {
	switch t {
	case TypeBoolean:
		return v == 0 || v == 100
	case TypeLikert:
		return v == 20 || v == 40 || v == 60 || v == 80 || v == 100
	default:
		return false
	}
}

type Question struct {
	ID   string       `json:"id" yaml:"id"`
	Text string       `json:"text" yaml:"text"`
	Type QuestionType `json:"type" yaml:"type"`
}

type Dimension struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Rubric is the full taxonomy every evaluation is scored against. It is built
// once at startup and passed by reference; nothing mutates it afterwards.
type Rubric struct {
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`
}

// Validate checks the structural invariants: at least one dimension, every
// dimension has at least one question, dimension IDs unique, and question IDs
// unique across the whole rubric (answers are keyed by question ID alone).
func (r Rubric) Validate() error {
	if len(r.Dimensions) == 0 {
		return errors.New("rubric has no dimensions")
	}
	dimSeen := map[string]bool{}
	qSeen := map[string]bool{}
	for _, d := range r.Dimensions {
		if d.ID == "" {
			return errors.New("dimension with empty id")
		}
		if dimSeen[d.ID] {
			return fmt.Errorf("duplicate dimension id %q", d.ID)
		}
		dimSeen[d.ID] = true
		if len(d.Questions) == 0 {
			return fmt.Errorf("dimension %q has no questions", d.ID)
		}
		for _, q := range d.Questions {
			if q.ID == "" {
				return fmt.Errorf("dimension %q has a question with empty id", d.ID)
			}
			if qSeen[q.ID] {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			qSeen[q.ID] = true
			if q.Type != TypeBoolean && q.Type != TypeLikert {
				return fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
			}
		}
	}
	return nil
}

// Question finds a question by ID anywhere in the rubric.
func (r Rubric) Question(id string) (Question, bool) {
	for _, d := range r.Dimensions {
		for _, q := range d.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// QuestionCount is the total number of questions across all dimensions.
func (r Rubric) QuestionCount() int {
	n := 0
	for _, d := range r.Dimensions {
		n += len(d.Questions)
	}
	return n
}

// DefaultRubric is the compiled-in project-evaluation taxonomy. Deployments
// can replace it with a YAML file via RUBRIC_PATH (see LoadRubricFile).
func DefaultRubric() Rubric {
	return Rubric{Dimensions: []Dimension{
		{
			ID:          "planning",
			Name:        "Planning & Scoping",
			Description: "How well the project was defined and scoped before work began.",
			Questions: []Question{
				{ID: "planning_goals_defined", Text: "Were project goals clearly defined at kickoff?", Type: TypeBoolean},
				{ID: "planning_scope_stable", Text: "The agreed scope remained stable throughout delivery.", Type: TypeLikert},
				{ID: "planning_timeline_realistic", Text: "The original timeline was realistic.", Type: TypeLikert},
			},
		},
		{
			ID:          "execution",
			Name:        "Execution & Delivery",
			Description: "Quality and timeliness of the delivered work.",
			Questions: []Question{
				{ID: "execution_on_time", Text: "Was the project delivered on schedule?", Type: TypeBoolean},
				{ID: "execution_quality", Text: "Deliverables met the agreed quality bar.", Type: TypeLikert},
				{ID: "execution_blockers_handled", Text: "Blockers were identified and resolved promptly.", Type: TypeLikert},
			},
		},
		{
			ID:          "communication",
			Name:        "Team Communication",
			Description: "Information flow within the team and toward stakeholders.",
			Questions: []Question{
				{ID: "communication_status_updates", Text: "Were regular status updates provided?", Type: TypeBoolean},
				{ID: "communication_stakeholders", Text: "Stakeholders were kept informed of risks and changes.", Type: TypeLikert},
				{ID: "communication_team", Text: "Communication inside the team was effective.", Type: TypeLikert},
			},
		},
		{
			ID:          "admin",
			Name:        "Administrative Efficiency",
			Description: "Budget discipline and process overhead.",
			Questions: []Question{
				{ID: "admin_within_budget", Text: "Did the project stay within budget?", Type: TypeBoolean},
				{ID: "admin_process_overhead", Text: "Administrative processes did not slow the team down.", Type: TypeLikert},
				{ID: "admin_resource_allocation", Text: "People and resources were allocated efficiently.", Type: TypeLikert},
			},
		},
		{
			ID:          "outcome",
			Name:        "Outcome & Impact",
			Description: "Whether the project achieved what it set out to do.",
			Questions: []Question{
				{ID: "outcome_goals_met", Text: "Were the original goals met?", Type: TypeBoolean},
				{ID: "outcome_stakeholder_satisfaction", Text: "Stakeholders are satisfied with the result.", Type: TypeLikert},
				{ID: "outcome_lessons_captured", Text: "Lessons learned were captured for future projects.", Type: TypeLikert},
			},
		},
	}}
}
