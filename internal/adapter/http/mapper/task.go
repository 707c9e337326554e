package mapper

import (
	"time"

	"github.com/M1estere/To-Do-API/internal/adapter/http/dto"
	"github.com/M1estere/To-Do-API/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.Status != nil {
		value := string(*task.Status)
		item.Status = &value
	}

	return item
}

func ToTaskEventMessage(event domain.TaskEvent) dto.TaskEventMessage {
	return dto.TaskEventMessage{
		Event:      string(event.Type),
		Task:       ToTaskItem(event.Task),
		OccurredAt: event.OccurredAt.Format(time.RFC3339),
	}
}
