package cli

import (
	"context"
	"errors"
	"fmt"

	"todo-list/internal/view"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the task with id args[0] after confirmation
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	if err := controller.OpenDetail(ctx, args[0]); err != nil {
		return reported(err)
	}
	name := controller.State().Selected.Name

	if err := controller.DeleteSelected(ctx); err != nil {
		if errors.Is(err, view.ErrCancelled) {
			fmt.Fprintln(c.app.out, "Delete cancelled.")
			return nil
		}
		return reported(err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", name)
	return nil
}
