package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/internal/core/ports"
)

// memoryTaskRepository is an in-memory stand-in for the SQL store.
type memoryTaskRepository struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]domain.Task
	writes int
}

var _ ports.TaskRepository = (*memoryTaskRepository)(nil)

func newMemoryTaskRepository() *memoryTaskRepository {
	return &memoryTaskRepository{tasks: map[uint64]domain.Task{}}
}

func (r *memoryTaskRepository) ListTasks(_ context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *memoryTaskRepository) GetTask(_ context.Context, id uint64) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *memoryTaskRepository) TitleExists(_ context.Context, title string, excludeID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, task := range r.tasks {
		if id != excludeID && task.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryTaskRepository) CreateTask(_ context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.writes++
	now := time.Now().UTC()
	task := domain.Task{
		ID:          r.nextID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *memoryTaskRepository) UpdateTask(_ context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	r.writes++
	task = input.Apply(task)
	task.UpdatedAt = time.Now().UTC()
	r.tasks[id] = task
	return task, nil
}

func (r *memoryTaskRepository) DeleteTask(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	r.writes++
	delete(r.tasks, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
}

func (p *recordingPublisher) PublishTaskEvent(event domain.TaskEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.TaskEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]domain.TaskEventType, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}
