package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleConflict = errors.New("task title already exists")
	ErrInvalidTask       = errors.New("invalid task")
)

// TitleConflictError is returned when a write would give two tasks the same title.
type TitleConflictError struct {
	Title string
}

func (e *TitleConflictError) Error() string {
	return fmt.Sprintf("task %q already exists", e.Title)
}

func (e *TitleConflictError) Is(target error) bool {
	return target == ErrTaskTitleConflict
}

const (
	RuleRequired = "required"
	RuleMax      = "max"
	RuleOneOf    = "oneof"
	RuleString   = "string"
	RuleInvalid  = "invalid"
)

type Violation struct {
	Field string
	Rule  string
	Param string
}

type ValidationError struct {
	Violations []Violation
}

func newValidationError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Rule)
	}
	return "invalid task: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTask
}
