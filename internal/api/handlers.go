package api

import (
	stderrors "errors"
	"io"
	"net/http"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/services"

	"github.com/gin-gonic/gin"
)

type taskHandler struct {
	svc services.TaskService
}

func (h *taskHandler) list(c *gin.Context) {
	tasks, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *taskHandler) get(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) create(c *gin.Context) {
	var input services.CreateTaskInput
	if err := bindJSON(c, &input, false); err != nil {
		fail(c, err)
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *taskHandler) update(c *gin.Context) {
	var patch domain.TaskPatch
	if err := bindJSON(c, &patch, true); err != nil {
		fail(c, err)
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the request body into dst. An empty body is accepted
// only when allowEmpty is set, leaving dst untouched.
func bindJSON(c *gin.Context, dst any, allowEmpty bool) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	if allowEmpty && stderrors.Is(err, io.EOF) {
		return nil
	}
	return errors.NewInvalidInputError("body", nil, "request body must be a JSON object")
}

// fail writes the error response and logs server-side failures.
func fail(c *gin.Context, err error) {
	if errors.ShouldLogError(err) {
		logging.FromContext(c.Request.Context()).
			With("method", c.Request.Method, "path", c.Request.URL.Path).
			Error("request failed", errors.LogValues(err)...)
	}
	c.AbortWithStatusJSON(StatusFor(err), ErrorResponse{Error: errors.GetUserMessage(err)})
}
