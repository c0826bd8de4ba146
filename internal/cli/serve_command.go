package cli

import (
	"context"
	"errors"

	"todo-list/internal/api"
	"todo-list/internal/config"
	"todo-list/internal/services"
	"todo-list/internal/validation"

	"github.com/spf13/cobra"
)

// ServeCommand runs the HTTP server until its context is cancelled.
type ServeCommand struct {
	config *config.Config
	root   *RootCommand
}

// Execute opens the local store and serves it over HTTP
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if c.config.IsRemote() {
		return errors.New("serve always uses a local store; unset --server")
	}
	log := c.root.logger

	taskStore, err := config.OpenStore(ctx, c.config, log)
	if err != nil {
		return NewErrorHandler().Handle("open task store", err)
	}
	defer func() {
		if err := taskStore.Close(); err != nil {
			log.Warn("failed to close task store", "error", err)
		}
	}()

	svc := services.NewTaskServiceWithValidator(taskStore, validation.NewTaskValidatorWithConfig(c.config), log)
	log.Info("Serving tasks", "driver", c.config.Storage.Driver, "address", c.config.Addr())
	return api.New(svc, c.config, log).Run(ctx)
}

func (r *RootCommand) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Long: `Serve the task API over HTTP/JSON at /tasks and /api/tasks, with
/health and /metrics endpoints. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serve := &ServeCommand{config: r.config, root: r}
			return serve.Execute(cmd.Context(), args)
		},
	}
	cmd.Flags().String("host", "", "Listen host (overrides TODO_SERVER_HOST)")
	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides TODO_SERVER_PORT)")
	return cmd
}
