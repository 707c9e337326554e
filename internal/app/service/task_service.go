package service

import (
	"context"
	"fmt"
	"time"

	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	publisher      ports.TaskEventPublisher
	now            func() time.Time
}

// NewTaskService wires the service to its store. A nil publisher drops task events.
func NewTaskService(taskRepository ports.TaskRepository, publisher ports.TaskEventPublisher) *TaskService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &TaskService{
		taskRepository: taskRepository,
		publisher:      publisher,
		now:            time.Now,
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskRepository.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	if err := s.ensureTitleAvailable(ctx, input.Title, 0); err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.CreateTask(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(domain.TaskCreated, task)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	current, err := s.taskRepository.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	title := current.Title
	if input.Title != nil {
		title = *input.Title
	}
	if err := s.ensureTitleAvailable(ctx, title, current.ID); err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.UpdateTask(ctx, id, input)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(domain.TaskUpdated, task)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	task, err := s.taskRepository.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.publish(domain.TaskDeleted, task)
	return nil
}

func (s *TaskService) ensureTitleAvailable(ctx context.Context, title string, excludeID uint64) error {
	exists, err := s.taskRepository.TitleExists(ctx, title, excludeID)
	if err != nil {
		return fmt.Errorf("check title uniqueness: %w", err)
	}
	if exists {
		return &domain.TitleConflictError{Title: title}
	}
	return nil
}

func (s *TaskService) publish(eventType domain.TaskEventType, task domain.Task) {
	s.publisher.PublishTaskEvent(domain.TaskEvent{
		Type:       eventType,
		Task:       task,
		OccurredAt: s.now().UTC(),
	})
}

type noopPublisher struct{}

func (noopPublisher) PublishTaskEvent(domain.TaskEvent) {}

var _ ports.TaskService = (*TaskService)(nil)
