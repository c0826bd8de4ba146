// Package client implements services.TaskService against a remote todo server.
package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/services"

	"github.com/go-resty/resty/v2"
)

// TasksPath is the collection path the client talks to.
const TasksPath = "/api/tasks"

// Options tunes the underlying HTTP client.
type Options struct {
	Timeout    time.Duration
	RetryCount int
	Debug      bool
}

// Client is a services.TaskService backed by the HTTP API.
type Client struct {
	http *resty.Client
}

var _ services.TaskService = (*Client)(nil)

// New creates a client for the server at baseURL.
func New(baseURL string, opts Options) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetDebug(opts.Debug)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	c.AddRetryCondition(retryCondition)

	return &Client{http: c}
}

// NewFromConfig creates a client from the client section of cfg.
func NewFromConfig(cfg *config.Config) *Client {
	return New(cfg.Client.ServerURL, Options{
		Timeout:    cfg.Client.Timeout,
		RetryCount: cfg.Client.RetryCount,
		Debug:      cfg.Log.Level == logging.LevelDebug,
	})
}

// retryCondition retries reads on network errors and server-side failures.
// Writes are never retried: a repeated POST would create a second task.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return !stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded)
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	resp, err := c.request(ctx).
		SetResult(&tasks).
		Get(TasksPath)
	if err := check("list tasks", "", resp, err); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&task).
		Get(TasksPath + "/{id}")
	if err := check("get task", id, resp, err); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, input services.CreateTaskInput) (*domain.Task, error) {
	var task domain.Task
	resp, err := c.request(ctx).
		SetBody(input).
		SetResult(&task).
		Post(TasksPath)
	if err := check("create task", "", resp, err); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(patch).
		SetResult(&task).
		Put(TasksPath + "/{id}")
	if err := check("update task", id, resp, err); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Delete(TasksPath + "/{id}")
	return check("delete task", id, resp, err)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetError(&errorBody{})
}

// check turns a transport failure or an error status into an AppError.
func check(operation, id string, resp *resty.Response, err error) error {
	if err != nil {
		if ctxErr := errors.FromContextError(operation, err); errors.IsAppError(ctxErr) {
			return ctxErr
		}
		return errors.NewStorageError(operation, err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := http.StatusText(resp.StatusCode())
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return errors.NewValidationError(msg, nil)
	case http.StatusNotFound:
		return errors.NewNotFoundError("task", id)
	case http.StatusGatewayTimeout:
		return errors.NewTimeoutError(operation, nil)
	default:
		return errors.NewStorageError(operation, fmt.Errorf("server returned %d: %s", resp.StatusCode(), msg))
	}
}
