package cli

import (
	"context"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the status of every task id in args and prints the list
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	if err := controller.LoadList(ctx); err != nil {
		return reported(err)
	}
	for _, id := range args {
		if err := controller.ToggleStatus(ctx, id); err != nil {
			return reported(err)
		}
	}
	c.app.renderList(controller.State())
	return nil
}
