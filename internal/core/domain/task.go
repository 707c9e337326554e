package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const TitleMaxLength = 255

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the accepted statuses in the order they are documented.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64
	Title       string
	Description *string
	Status      *TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *TaskStatus
}

// Validate trims the title in place and reports every rule the input breaks.
func (in *CreateTaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)

	var violations []Violation
	violations = append(violations, validateTitle(in.Title)...)
	violations = append(violations, validateStatus(in.Status)...)

	return newValidationError(violations)
}

// UpdateTaskInput carries a partial update. A nil Title means "keep"; Description and
// Status distinguish omitted (Set == false) from explicit null (Set == true, value nil).
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	StatusSet      bool
}

func (in *UpdateTaskInput) Validate() error {
	var violations []Violation

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
		violations = append(violations, validateTitle(title)...)
	}
	if in.StatusSet {
		violations = append(violations, validateStatus(in.Status)...)
	}

	return newValidationError(violations)
}

func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.StatusSet {
		task.Status = in.Status
	}
	return task
}

func validateTitle(title string) []Violation {
	if title == "" {
		return []Violation{{Field: "title", Rule: RuleRequired}}
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return []Violation{{Field: "title", Rule: RuleMax, Param: "255"}}
	}
	return nil
}

func validateStatus(status *TaskStatus) []Violation {
	if status == nil || status.Valid() {
		return nil
	}
	return []Violation{{Field: "status", Rule: RuleOneOf}}
}
