package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/M1estere/To-Do-API/internal/config"
	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/internal/core/ports"
)

const (
	taskColumns      = "id, title, description, status, created_at, updated_at"
	listTasksQuery   = "SELECT " + taskColumns + " FROM tasks ORDER BY id"
	getTaskQuery     = "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	titleExistsQuery = "SELECT COUNT(*) FROM tasks WHERE title = ? AND id <> ?"
	insertTaskQuery  = "INSERT INTO tasks (title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	deleteTaskQuery  = "DELETE FROM tasks WHERE id = ?"
)

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      sql.NullString `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getTaskQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) TitleExists(ctx context.Context, title string, excludeID uint64) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(titleExistsQuery), title, excludeID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := r.timestamp()
	args := []any{input.Title, nullString(input.Description), nullStatus(input.Status), now, now}

	id, err := r.insert(ctx, args)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Task{}, &domain.TitleConflictError{Title: input.Title}
		}
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return r.GetTask(ctx, id)
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []any{r.timestamp()}

	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, nullString(input.Description))
	}
	if input.StatusSet {
		sets = append(sets, "status = ?")
		args = append(args, nullStatus(input.Status))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		if isUniqueViolation(err) && input.Title != nil {
			return domain.Task{}, &domain.TitleConflictError{Title: *input.Title}
		}
		return domain.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}

	// MySQL reports zero affected rows for no-op updates, so existence is checked by re-reading.
	return r.GetTask(ctx, id)
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) insert(ctx context.Context, args []any) (uint64, error) {
	if r.db.DriverName() == config.DriverPostgres {
		var id uint64
		err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertTaskQuery+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	result, err := r.db.ExecContext(ctx, insertTaskQuery, args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// timestamp drops sub-second precision so the value survives DATETIME columns unchanged.
func (r *TaskRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullStatus(value *domain.TaskStatus) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*value), Valid: true}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.Status.Valid {
		value := domain.TaskStatus(row.Status.String)
		task.Status = &value
	}

	return task
}
