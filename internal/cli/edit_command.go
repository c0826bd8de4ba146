package cli

import (
	"context"
	"fmt"

	"todo-list/internal/domain"
)

// EditOptions holds the fields to change. Nil fields keep their value.
type EditOptions struct {
	Name        *string
	Status      *string
	Description *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute opens the task, applies the supplied fields to its form and saves it
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	if err := controller.OpenDetail(ctx, args[0]); err != nil {
		return reported(err)
	}

	form := controller.State().Form
	if c.opts.Name != nil {
		form.Name = *c.opts.Name
	}
	if c.opts.Status != nil {
		form.Status = domain.Status(*c.opts.Status)
	}
	if c.opts.Description != nil {
		form.Description = *c.opts.Description
	}

	task, err := controller.SaveDetail(ctx, form)
	if err != nil {
		return reported(err)
	}

	fmt.Fprintf(c.app.out, "Updated task: %s\n\n", task.Name)
	c.app.renderTask(*task)
	return nil
}
