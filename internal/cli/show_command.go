package cli

import (
	"context"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the detail screen of the task with id args[0]
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	if err := controller.OpenDetail(ctx, args[0]); err != nil {
		return reported(err)
	}
	c.app.renderTask(*controller.State().Selected)
	return nil
}
