package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRubricFile reads and validates a rubric from a YAML file. Used when
// RUBRIC_PATH is set; otherwise deployments run with DefaultRubric.
func LoadRubricFile(path string) (Rubric, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Rubric{}, fmt.Errorf("read rubric: %w", err)
	}
	var r Rubric
	if err := yaml.Unmarshal(buf, &r); err != nil {
		return Rubric{}, fmt.Errorf("parse rubric: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rubric{}, fmt.Errorf("invalid rubric %s: %w", path, err)
	}
	return r, nil
}
