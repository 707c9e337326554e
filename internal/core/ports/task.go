package ports

import (
	"context"

	"github.com/M1estere/To-Do-API/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	// TitleExists reports whether a task other than excludeID uses title. Zero excludes nothing.
	TitleExists(ctx context.Context, title string, excludeID uint64) (bool, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

type TaskEventPublisher interface {
	PublishTaskEvent(event domain.TaskEvent)
}
