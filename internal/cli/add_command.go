package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-list/internal/domain"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	status      string
	description string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, status, description string) *AddCommand {
	return &AddCommand{app: app, status: status, description: description}
}

// Execute creates a task named by args and prints the refreshed list
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	controller.OpenCreate()

	form := controller.State().Form
	form.Name = strings.Join(args, " ")
	form.Status = domain.Status(c.status)
	form.Description = c.description

	task, err := controller.SubmitCreate(ctx, form)
	if err != nil {
		return reported(err)
	}

	fmt.Fprintf(c.app.out, "Created task: %s (%s)\n\n", task.Name, task.ID)
	c.app.renderList(controller.State())
	return nil
}
