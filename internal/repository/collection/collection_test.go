package collection

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/repository"
	"todo-list/internal/repository/repositorytest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(NewRedisBackend(client), DefaultKey, logging.NewForTests()), mr
}

func newFileRepo(t *testing.T) (*Repository, *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir(), 0)
	require.NoError(t, err)
	return New(backend, DefaultKey, logging.NewForTests()), backend
}

func TestRedisRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Repository {
		repo, _ := newRedisRepo(t)
		return repo
	})
}

func TestFileRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Repository {
		repo, _ := newFileRepo(t)
		return repo
	})
}

func TestRepository_StoresSingleJSONArray(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, domain.Task{ID: "1", Name: "Buy milk", Status: domain.StatusIncomplete}))
	require.NoError(t, repo.Insert(ctx, domain.Task{ID: "2", Name: "Walk dog", Status: domain.StatusComplete}))

	raw, err := mr.Get(DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"1","name":"Buy milk","status":"Incomplete","description":""},
		{"id":"2","name":"Walk dog","status":"Complete","description":""}
	]`, raw)
	assert.Len(t, mr.Keys(), 1)
}

func TestRepository_CorruptPayloadIsEmpty(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		repo, mr := newRedisRepo(t)
		require.NoError(t, mr.Set(DefaultKey, "{not json"))

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("file", func(t *testing.T) {
		repo, backend := newFileRepo(t)
		require.NoError(t, os.WriteFile(backend.Path(DefaultKey), []byte("garbage"), 0o644))

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)

		// the next write replaces the corrupt record
		require.NoError(t, repo.Insert(context.Background(), domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))
		tasks, err = repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}

func TestRepository_CustomKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := New(NewRedisBackend(client), "other-key", logging.NewForTests())
	require.NoError(t, repo.Insert(context.Background(), domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))

	assert.True(t, mr.Exists("other-key"))
	assert.False(t, mr.Exists(DefaultKey))
}

func TestRepository_FilePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := NewFileBackend(dir, 0)
	require.NoError(t, err)
	first := New(backend, "", nil)
	require.NoError(t, first.Insert(ctx, domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))

	backend2, err := NewFileBackend(dir, 0)
	require.NoError(t, err)
	second := New(backend2, "", nil)
	tasks, err := second.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

type failingBackend struct{ err error }

func (f failingBackend) Load(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingBackend) Save(context.Context, string, []byte) error         { return f.err }
func (f failingBackend) Close() error                                       { return nil }

func TestRepository_BackendFailure(t *testing.T) {
	repo := New(failingBackend{err: stderrors.New("unavailable")}, "", logging.NewForTests())

	_, err := repo.List(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))

	repo = New(failingBackend{err: context.DeadlineExceeded}, "", logging.NewForTests())
	_, err = repo.List(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
}
