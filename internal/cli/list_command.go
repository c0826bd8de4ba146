package cli

import (
	"context"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute loads every task and prints the list screen
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	controller := c.app.Controller()
	if err := controller.LoadList(ctx); err != nil {
		return reported(err)
	}
	c.app.renderList(controller.State())
	return nil
}
