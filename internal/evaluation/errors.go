package evaluation

import "errors"

var (
	// ErrUnknownQuestion means an answer referenced a question ID that does
	// not exist in the rubric.
	ErrUnknownQuestion = errors.New("unknown question id")
	// ErrInvalidAnswerValue means an answer value is outside the valid domain
	// for its question's type.
	ErrInvalidAnswerValue = errors.New("answer value outside valid domain")
	// ErrIncompleteEvaluation means submission was attempted while some
	// questions are still unanswered.
	ErrIncompleteEvaluation = errors.New("evaluation incomplete")
	// ErrNotFound means the referenced evaluation no longer exists.
	ErrNotFound = errors.New("evaluation not found")
)
