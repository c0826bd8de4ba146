package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"todo-list/internal/api"
	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/repository/memory"
	"todo-list/internal/services"
	"todo-list/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New(memory.New(), store.NewSequenceGenerator(1), logging.NewForTests())
	svc := services.NewTaskServiceWithValidator(s, nil, logging.NewForTests())
	srv := httptest.NewServer(api.NewRouter(svc, logging.NewForTests(), api.RouterOptions{}))
	t.Cleanup(srv.Close)

	return New(srv.URL, Options{Timeout: 5 * time.Second})
}

func TestClient_BuyMilkScenario(t *testing.T) {
	c := setupServer(t)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, services.CreateTaskInput{Name: "Buy milk", Status: domain.StatusIncomplete})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "", created.Description)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{*created}, tasks)

	updated, err := c.UpdateTask(ctx, created.ID, domain.StatusPatch(domain.StatusComplete))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, updated.Status)
	assert.Equal(t, "Buy milk", updated.Name)

	got, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, c.DeleteTask(ctx, created.ID))

	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestClient_ErrorMapping(t *testing.T) {
	c := setupServer(t)
	ctx := context.Background()

	_, err := c.GetTask(ctx, "missing")
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	err = c.DeleteTask(ctx, "missing")
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	_, err = c.CreateTask(ctx, services.CreateTaskInput{Name: "", Status: domain.StatusIncomplete})
	assert.True(t, errors.IsInvalidInput(err), "got %v", err)
	assert.NotEmpty(t, errors.GetUserMessage(err))

	_, err = c.UpdateTask(ctx, "missing", domain.StatusPatch(domain.StatusComplete))
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func TestClient_PathEscaping(t *testing.T) {
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a/b","name":"n","status":"Complete","description":""}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, Options{}).GetTask(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/tasks/a%2Fb", gotPath.Load())
}

func TestClient_Retries(t *testing.T) {
	tests := []struct {
		name          string
		call          func(*Client) error
		expectedCalls int32
	}{
		{
			name: "reads are retried on server errors",
			call: func(c *Client) error {
				_, err := c.ListTasks(context.Background())
				return err
			},
			expectedCalls: 3,
		},
		{
			name: "writes are not retried",
			call: func(c *Client) error {
				_, err := c.CreateTask(context.Background(), services.CreateTaskInput{Name: "x", Status: domain.StatusIncomplete})
				return err
			},
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"unavailable"}`))
			}))
			defer srv.Close()

			c := New(srv.URL, Options{RetryCount: 2})
			err := tt.call(c)

			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage), "got %v", err)
			assert.Equal(t, tt.expectedCalls, calls.Load())
		})
	}
}

func TestClient_CancelledContext(t *testing.T) {
	c := setupServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout), "got %v", err)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Client.ServerURL = "http://localhost:5000/"

	c := NewFromConfig(cfg)
	assert.Equal(t, "http://localhost:5000", c.http.BaseURL)
}
