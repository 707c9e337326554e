package db

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/M1estere/To-Do-API/internal/config"
	"github.com/M1estere/To-Do-API/internal/core/domain"
)

func setupTasksDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := ConnectDB(&config.Config{DbDriver: config.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, ApplyMigrations(context.Background(), db))
	return db
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestTaskRepository_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupTasksDB(t))
	createdAt := time.Date(2026, 10, 19, 9, 30, 15, 500, time.UTC)
	repo.now = func() time.Time { return createdAt }

	created, err := repo.CreateTask(ctx, domain.CreateTaskInput{
		Title:       "Buy milk",
		Description: strPtr("2 litres"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Buy milk", created.Title)
	require.Equal(t, "2 litres", *created.Description)
	require.Nil(t, created.Status)
	require.True(t, created.CreatedAt.Equal(createdAt.Truncate(time.Second)))

	got, err := repo.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	updatedAt := createdAt.Add(time.Hour)
	repo.now = func() time.Time { return updatedAt }
	updated, err := repo.UpdateTask(ctx, created.ID, domain.UpdateTaskInput{
		Status:    statusPtr(domain.TaskStatusCompleted),
		StatusSet: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy milk", updated.Title)
	require.Equal(t, "2 litres", *updated.Description)
	require.Equal(t, domain.TaskStatusCompleted, *updated.Status)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.True(t, updated.UpdatedAt.Equal(updatedAt.Truncate(time.Second)))

	require.NoError(t, repo.DeleteTask(ctx, created.ID))
	_, err = repo.GetTask(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.ErrorIs(t, repo.DeleteTask(ctx, created.ID), domain.ErrTaskNotFound)
}

func TestTaskRepository_UpdateClearsNullableFields(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupTasksDB(t))

	created, err := repo.CreateTask(ctx, domain.CreateTaskInput{
		Title:       "Buy milk",
		Description: strPtr("2 litres"),
		Status:      statusPtr(domain.TaskStatusPending),
	})
	require.NoError(t, err)

	updated, err := repo.UpdateTask(ctx, created.ID, domain.UpdateTaskInput{
		Title:          strPtr("Buy oat milk"),
		DescriptionSet: true,
		StatusSet:      true,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Nil(t, updated.Description)
	require.Nil(t, updated.Status)
}

func TestTaskRepository_UpdateUnknownTask(t *testing.T) {
	repo := NewTaskRepository(setupTasksDB(t))

	_, err := repo.UpdateTask(context.Background(), 42, domain.UpdateTaskInput{Title: strPtr("x")})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_ListTasks(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupTasksDB(t))

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 0)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.CreateTask(ctx, domain.CreateTaskInput{Title: title})
		require.NoError(t, err)
	}

	tasks, err = repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "first", tasks[0].Title)
	require.Equal(t, "third", tasks[2].Title)
}

func TestTaskRepository_TitleExists(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupTasksDB(t))

	created, err := repo.CreateTask(ctx, domain.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	exists, err := repo.TitleExists(ctx, "Buy milk", 0)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.TitleExists(ctx, "Buy milk", created.ID)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.TitleExists(ctx, "buy milk", 0)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTaskRepository_UniqueIndexReportsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupTasksDB(t))

	_, err := repo.CreateTask(ctx, domain.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	other, err := repo.CreateTask(ctx, domain.CreateTaskInput{Title: "Buy bread"})
	require.NoError(t, err)

	_, err = repo.CreateTask(ctx, domain.CreateTaskInput{Title: "Buy milk"})
	require.ErrorIs(t, err, domain.ErrTaskTitleConflict)

	_, err = repo.UpdateTask(ctx, other.ID, domain.UpdateTaskInput{Title: strPtr("Buy milk")})
	require.ErrorIs(t, err, domain.ErrTaskTitleConflict)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestApplyMigrations_IsRerunnable(t *testing.T) {
	db := setupTasksDB(t)
	require.NoError(t, ApplyMigrations(context.Background(), db))
}

func TestBuildDSN(t *testing.T) {
	dsn, err := buildDSN(&config.Config{
		DbDriver:   config.DriverMySQL,
		DbUser:     "todo",
		DbPassword: "secret",
		DbHost:     "db",
		DbPort:     "3306",
		DbName:     "todo",
	})
	require.NoError(t, err)
	require.Equal(t, "todo:secret@tcp(db:3306)/todo?parseTime=true&multiStatements=true", dsn)

	dsn, err = buildDSN(&config.Config{
		DbDriver:   config.DriverPostgres,
		DbUser:     "todo",
		DbPassword: "secret",
		DbHost:     "pg",
		DbPort:     "5432",
		DbName:     "todo",
		DbParams:   "sslmode=disable",
	})
	require.NoError(t, err)
	require.Equal(t, "postgres://todo:secret@pg:5432/todo?sslmode=disable", dsn)

	dsn, err = buildDSN(&config.Config{DbDriver: config.DriverSQLite, SqlitePath: "/tmp/todo.db"})
	require.NoError(t, err)
	require.Equal(t, "file:/tmp/todo.db?_foreign_keys=on", dsn)

	_, err = buildDSN(&config.Config{DbDriver: "oracle"})
	require.Error(t, err)
}
