// Package view drives the task screens: it turns user actions into
// TaskService calls and keeps the state a renderer draws from.
package view

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/services"
)

// Screen identifies which of the three views is showing.
type Screen int

const (
	ScreenList Screen = iota
	ScreenCreate
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenCreate:
		return "create"
	case ScreenDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// User-facing notices.
const (
	MsgNameRequired  = "Please enter a task name"
	MsgLoadTasks     = "Failed to load tasks"
	MsgLoadTask      = "Failed to load task"
	MsgCreateTask    = "Failed to create task"
	MsgUpdateTask    = "Failed to update task"
	MsgDeleteTask    = "Failed to delete task"
	MsgConfirmDelete = "Are you sure you want to delete this task?"
	EmptyListMessage = "No tasks yet."
)

var (
	// ErrNameRequired is returned when a form is submitted without a name.
	ErrNameRequired = stderrors.New("task name is required")
	// ErrNoSelection is returned by detail actions when no task is open.
	ErrNoSelection = stderrors.New("no task selected")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = stderrors.New("cancelled")
)

// Notifier shows a failure notice to the user.
type Notifier interface {
	Alert(message string)
}

// Confirmer is optionally implemented by a Notifier that can ask the user
// a yes/no question. Without it destructive actions proceed unasked.
type Confirmer interface {
	Confirm(message string) bool
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// Form holds the editable fields of the create and detail screens.
type Form struct {
	Name        string
	Status      domain.Status
	Description string
}

// NewForm returns an empty form with status Incomplete.
func NewForm() Form {
	return Form{Status: domain.StatusIncomplete}
}

// FormFromTask fills a form with the fields of task.
func FormFromTask(task domain.Task) Form {
	return Form{Name: task.Name, Status: task.Status, Description: task.Description}
}

// ToggleStatus flips the form status without saving.
func (f *Form) ToggleStatus() {
	f.Status = f.Status.Toggle()
}

// State is everything a renderer needs to draw the current screen.
type State struct {
	Screen   Screen
	Tasks    []domain.Task
	Selected *domain.Task
	Form     Form
}

// IsEmpty reports whether the list screen has nothing to show.
func (s State) IsEmpty() bool {
	return len(s.Tasks) == 0
}

// Controller translates user actions into service calls. State only
// changes after a call succeeds; on failure the user is alerted and the
// previous state stays. A Controller serves one session and is not safe
// for concurrent use.
type Controller struct {
	svc      services.TaskService
	notifier Notifier
	log      logging.Logger
	state    State
}

// NewController creates a controller showing an empty list screen.
func NewController(svc services.TaskService, notifier Notifier, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Default()
	}
	return &Controller{
		svc:      svc,
		notifier: notifier,
		log:      log,
		state:    State{Screen: ScreenList, Tasks: []domain.Task{}, Form: NewForm()},
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	s := c.state
	s.Tasks = slices.Clone(c.state.Tasks)
	if c.state.Selected != nil {
		selected := *c.state.Selected
		s.Selected = &selected
	}
	return s
}

// LoadList fetches all tasks and shows the list screen.
func (c *Controller) LoadList(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		return c.fail(MsgLoadTasks, err)
	}
	c.state.Screen = ScreenList
	c.state.Tasks = tasks
	c.state.Selected = nil
	return nil
}

// ToggleStatus flips the status of task id and reloads the list.
func (c *Controller) ToggleStatus(ctx context.Context, id string) error {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return c.fail(MsgUpdateTask, err)
	}

	if _, err := c.svc.UpdateTask(ctx, id, domain.StatusPatch(current.Status.Toggle())); err != nil {
		return c.fail(MsgUpdateTask, err)
	}
	return c.LoadList(ctx)
}

// OpenCreate shows an empty create form.
func (c *Controller) OpenCreate() {
	c.state.Screen = ScreenCreate
	c.state.Selected = nil
	c.state.Form = NewForm()
}

// SubmitCreate creates a task from form and returns to the list.
func (c *Controller) SubmitCreate(ctx context.Context, form Form) (*domain.Task, error) {
	if strings.TrimSpace(form.Name) == "" {
		c.notifier.Alert(MsgNameRequired)
		return nil, ErrNameRequired
	}

	description := form.Description
	task, err := c.svc.CreateTask(ctx, services.CreateTaskInput{
		Name:        form.Name,
		Status:      form.Status,
		Description: &description,
	})
	if err != nil {
		return nil, c.fail(MsgCreateTask, err)
	}

	c.state.Form = NewForm()
	return task, c.LoadList(ctx)
}

// OpenDetail loads task id into the detail form.
func (c *Controller) OpenDetail(ctx context.Context, id string) error {
	task, err := c.svc.GetTask(ctx, id)
	if err != nil {
		return c.fail(MsgLoadTask, err)
	}
	c.state.Screen = ScreenDetail
	c.state.Selected = task
	c.state.Form = FormFromTask(*task)
	return nil
}

// SaveDetail writes every form field to the open task and returns to the list.
func (c *Controller) SaveDetail(ctx context.Context, form Form) (*domain.Task, error) {
	if c.state.Selected == nil {
		return nil, ErrNoSelection
	}
	if strings.TrimSpace(form.Name) == "" {
		c.notifier.Alert(MsgNameRequired)
		return nil, ErrNameRequired
	}

	patch := domain.TaskPatch{
		Name:        domain.StringPtr(form.Name),
		Status:      domain.StatusPtr(form.Status),
		Description: domain.StringPtr(form.Description),
	}
	task, err := c.svc.UpdateTask(ctx, c.state.Selected.ID, patch)
	if err != nil {
		return nil, c.fail(MsgUpdateTask, err)
	}

	return task, c.LoadList(ctx)
}

// DeleteSelected removes the open task after confirmation and returns to the list.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	if c.state.Selected == nil {
		return ErrNoSelection
	}
	if confirmer, ok := c.notifier.(Confirmer); ok && !confirmer.Confirm(MsgConfirmDelete) {
		return ErrCancelled
	}

	if err := c.svc.DeleteTask(ctx, c.state.Selected.ID); err != nil {
		return c.fail(MsgDeleteTask, err)
	}
	return c.LoadList(ctx)
}

// Cancel leaves the create or detail screen without saving.
func (c *Controller) Cancel() {
	c.state.Screen = ScreenList
	c.state.Selected = nil
	c.state.Form = NewForm()
}

// lookup prefers the loaded list and falls back to the service.
func (c *Controller) lookup(ctx context.Context, id string) (*domain.Task, error) {
	for _, task := range c.state.Tasks {
		if task.ID == id {
			return &task, nil
		}
	}
	return c.svc.GetTask(ctx, id)
}

func (c *Controller) fail(notice string, err error) error {
	if errors.ShouldLogError(err) {
		c.log.Error(notice, errors.LogValues(err)...)
	} else {
		c.log.Debug(notice, errors.LogValues(err)...)
	}
	c.notifier.Alert(notice)
	return err
}
