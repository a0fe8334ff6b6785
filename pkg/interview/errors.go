package interview

import "errors"

var (
	ErrNotFound          = errors.New("interview not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrAlreadyCompleted  = errors.New("interview already completed")
	ErrAlreadyEvaluated  = errors.New("interview already evaluated")
	ErrTooShort          = errors.New("interview too short to evaluate")
	ErrNotEvaluated      = errors.New("interview not evaluated yet")
)
