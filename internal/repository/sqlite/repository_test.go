package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/repository"
	"todo-list/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todo.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Repository {
		return setupTestDB(t)
	})
}

func TestRepository_InMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	task := domain.Task{ID: "abc", Name: "Buy milk", Status: domain.StatusIncomplete, Description: "semi-skimmed"}
	require.NoError(t, repo.Insert(ctx, task))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, task, *got)
}

func TestRepository_DuplicateIDIsStorageError(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))
	err := repo.Insert(ctx, domain.Task{ID: "1", Name: "b", Status: domain.StatusComplete})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}

func TestRepository_CancelledContext(t *testing.T) {
	repo, err := NewWithOptions(filepath.Join(t.TempDir(), "todo.db"), Options{QueryTimeout: time.Second})
	require.NoError(t, err)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout), "got %v", err)
}
