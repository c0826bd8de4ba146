// Package repositorytest holds a behavioural suite every repository.Repository
// implementation is expected to pass.
package repositorytest

import (
	"context"
	"testing"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) repository.Repository

// Run executes the suite against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("empty list", func(t *testing.T) {
		repo := newRepo(t)
		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("insert then get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		task := domain.Task{ID: "a", Name: "Buy milk", Status: domain.StatusIncomplete, Description: "2 litres"}

		require.NoError(t, repo.Insert(ctx, task))

		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, task, *got)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		// ids deliberately out of lexical order
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, repo.Insert(ctx, domain.Task{ID: id, Name: "task " + id, Status: domain.StatusIncomplete}))
		}

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []string{"c", "a", "b"}, ids(tasks))
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Insert(ctx, domain.Task{ID: "dup", Name: "first", Status: domain.StatusIncomplete}))

		err := repo.Insert(ctx, domain.Task{ID: "dup", Name: "second", Status: domain.StatusComplete})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage), "expected storage error, got %v", err)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "first", tasks[0].Name)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get(context.Background(), "missing")
		assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)
	})

	t.Run("update replaces the record in place", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Insert(ctx, domain.Task{ID: "1", Name: "first", Status: domain.StatusIncomplete}))
		require.NoError(t, repo.Insert(ctx, domain.Task{ID: "2", Name: "second", Status: domain.StatusIncomplete}))

		updated := domain.Task{ID: "1", Name: "first", Status: domain.StatusComplete, Description: "done"}
		require.NoError(t, repo.Update(ctx, updated))

		got, err := repo.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, updated, *got)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, ids(tasks))
	})

	t.Run("update missing", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Update(context.Background(), domain.Task{ID: "missing", Name: "x", Status: domain.StatusComplete})
		assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)
	})

	t.Run("delete removes exactly one record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Insert(ctx, domain.Task{ID: "1", Name: "first", Status: domain.StatusIncomplete}))
		require.NoError(t, repo.Insert(ctx, domain.Task{ID: "2", Name: "second", Status: domain.StatusIncomplete}))

		require.NoError(t, repo.Delete(ctx, "1"))

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, ids(tasks))

		err = repo.Delete(ctx, "1")
		assert.True(t, errors.IsNotFound(err), "second delete should be not found, got %v", err)
	})
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}
