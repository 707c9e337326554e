package domain

import "time"

type TaskEventType string

const (
	TaskCreated TaskEventType = "task.created"
	TaskUpdated TaskEventType = "task.updated"
	TaskDeleted TaskEventType = "task.deleted"
)

type TaskEvent struct {
	Type       TaskEventType
	Task       Task
	OccurredAt time.Time
}
