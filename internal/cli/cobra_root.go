package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"todo-list/internal/client"
	"todo-list/internal/config"
	"todo-list/internal/logging"
	"todo-list/internal/services"
	"todo-list/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	streams IOStreams
	config  *config.Config
	logger  logging.Logger
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(streams IOStreams) *RootCommand {
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	root := &RootCommand{streams: streams}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A small task list with a REST server and a command-line client",
		Long: `todo keeps a list of tasks, each with a name, a Complete/Incomplete
status and an optional description.

It works against a local store (memory, sqlite, postgres, redis or a JSON
file) or, with --server, against a running "todo serve" instance.

EXAMPLES:
  todo serve --port 5000                       # Serve the REST API
  todo add "Buy milk"                          # Create a task
  todo list                                    # Show all tasks
  todo toggle <id>                             # Flip Complete/Incomplete
  todo edit <id> --description "2 litres"      # Change fields
  todo delete <id>                             # Delete after confirmation
  todo --server http://localhost:5000 list     # Talk to a server

CONFIGURATION:
  Priority order: command-line flags > environment variables > defaults.
  Every setting can be set as TODO_<SECTION>_<FIELD>, for example:
    TODO_SERVER_PORT                           HTTP port (default: 5000)
    TODO_STORAGE_DRIVER                        memory|sqlite|postgres|redis|file
    TODO_STORAGE_PATH                          SQLite database file
    TODO_STORAGE_DSN                           Postgres connection string
    TODO_STORAGE_REDIS_ADDR                    Redis address
    TODO_STORAGE_DIR                           Directory of the file store
    TODO_STORAGE_KEY                           Collection key (default: todo-list-tasks)
    TODO_STORAGE_SEED                          auto|always|never
    TODO_STORE_ID_STRATEGY                     uuid|sequence
    TODO_LOG_LEVEL                             debug|info|warn|error
    TODO_CLIENT_SERVER_URL                     Same as --server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration and apply flag overrides before any command runs
			return root.loadConfig(cmd.Flags())
		},
	}
	root.cmd.SetIn(streams.In)
	root.cmd.SetOut(streams.Out)
	root.cmd.SetErr(streams.Err)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and prints errors not already shown.
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	err := r.cmd.ExecuteContext(ctx)
	if err != nil && !IsReported(err) {
		fmt.Fprintf(r.streams.Err, "Error: %s\n", NewErrorHandler().HandleSimple(err))
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Client configuration
	flags.String("server", "", "Base URL of a todo server (overrides TODO_CLIENT_SERVER_URL)")

	// Storage configuration
	flags.String("storage", "", "Storage driver: memory, sqlite, postgres, redis or file (overrides TODO_STORAGE_DRIVER)")
	flags.String("db-path", "", "SQLite database file (overrides TODO_STORAGE_PATH)")
	flags.String("data-dir", "", "Directory of the file store (overrides TODO_STORAGE_DIR)")
	flags.String("dsn", "", "Postgres connection string (overrides TODO_STORAGE_DSN)")
	flags.String("redis-addr", "", "Redis address (overrides TODO_STORAGE_REDIS_ADDR)")
	flags.String("key", "", "Collection key for redis and file stores (overrides TODO_STORAGE_KEY)")
	flags.String("seed", "", "Load sample tasks into an empty store: auto, always or never (overrides TODO_STORAGE_SEED)")
	flags.String("id-strategy", "", "Id generation: uuid or sequence (overrides TODO_STORE_ID_STRATEGY)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides TODO_LOG_LEVEL)")
	flags.Bool("log-json", false, "Log as JSON (overrides TODO_LOG_JSON)")

	// Application configuration
	flags.Duration("timeout", 0, "Timeout of a single command (overrides TODO_APPLICATION_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides TODO_APPLICATION_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Args:    cobra.NoArgs,
		RunE: r.runTask(func(app *App, _ *cobra.Command) Command {
			return NewListCommand(app)
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Create a new task",
		Long: `Create a new task. Words after "add" form the task name.

Examples:
  todo add Buy milk
  todo add "Write report" --status Complete --description "quarterly numbers"`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runTask(func(app *App, cmd *cobra.Command) Command {
			status, _ := cmd.Flags().GetString("status")
			description, _ := cmd.Flags().GetString("description")
			return NewAddCommand(app, status, description)
		}),
	}
	addCmd.Flags().String("status", "Incomplete", "Initial status: Complete or Incomplete")
	addCmd.Flags().StringP("description", "d", "", "Optional description")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: r.runTask(func(app *App, _ *cobra.Command) Command {
			return NewShowCommand(app)
		}),
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the name, status or description of a task",
		Long: `Change fields of a task. Only the flags given are changed;
pass --description "" to clear the description.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runTask(func(app *App, cmd *cobra.Command) Command {
			flags := cmd.Flags()
			return NewEditCommand(app, EditOptions{
				Name:        changedString(flags, "name"),
				Status:      changedString(flags, "status"),
				Description: changedString(flags, "description"),
			})
		}),
	}
	editCmd.Flags().String("name", "", "New task name")
	editCmd.Flags().String("status", "", "New status: Complete or Incomplete")
	editCmd.Flags().StringP("description", "d", "", "New description")

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Flip tasks between Complete and Incomplete",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.runTask(func(app *App, _ *cobra.Command) Command {
			return NewToggleCommand(app)
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task. This operation cannot be undone; you will be asked
to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runTask(func(app *App, cmd *cobra.Command) Command {
			app.assumeYes, _ = cmd.Flags().GetBool("yes")
			return NewDeleteCommand(app)
		}),
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	r.cmd.AddCommand(
		r.newServeCommand(),
		listCmd,
		addCmd,
		showCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
	)
}

// runTask wraps a task command: it opens the service, builds the App and
// runs the command under the application timeout.
func (r *RootCommand) runTask(build func(app *App, cmd *cobra.Command) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
		defer cancel()

		svc, closeFn, err := r.openService(ctx)
		if err != nil {
			return NewErrorHandler().Handle("open task store", err)
		}
		defer func() {
			if err := closeFn(); err != nil {
				r.logger.Warn("failed to close task store", "error", err)
			}
		}()

		app := NewApp(svc, r.streams, r.logger)
		return build(app, cmd).Execute(ctx, args)
	}
}

// openService returns the remote client when a server is configured and
// a local validating service over the configured store otherwise.
func (r *RootCommand) openService(ctx context.Context) (services.TaskService, func() error, error) {
	if r.config.IsRemote() {
		r.logger.Debug("using remote task service", "server", r.config.Client.ServerURL)
		return client.NewFromConfig(r.config), func() error { return nil }, nil
	}

	taskStore, err := config.OpenStore(ctx, r.config, r.logger)
	if err != nil {
		return nil, nil, err
	}
	svc := services.NewTaskServiceWithValidator(taskStore, validation.NewTaskValidatorWithConfig(r.config), r.logger)
	return svc, taskStore.Close, nil
}

// loadConfig loads configuration and applies values from command-line flags
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	overrides := &config.ConfigOverrides{
		ServerURL:  changedString(flags, "server"),
		Driver:     changedString(flags, "storage"),
		Path:       changedString(flags, "db-path"),
		Dir:        changedString(flags, "data-dir"),
		DSN:        changedString(flags, "dsn"),
		RedisAddr:  changedString(flags, "redis-addr"),
		Key:        changedString(flags, "key"),
		Seed:       changedString(flags, "seed"),
		IDStrategy: changedString(flags, "id-strategy"),
		LogLevel:   changedString(flags, "log-level"),
		LogJSON:    changedBool(flags, "log-json"),
		Timeout:    changedDuration(flags, "timeout"),
		Verbose:    changedBool(flags, "verbose"),
		Host:       changedString(flags, "host"),
		Port:       changedInt(flags, "port"),
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}
	r.config = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = r.streams.Err
	r.logger = logging.NewLogger(logCfg)
	logging.SetDefault(r.logger)
	return nil
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedDuration(flags *pflag.FlagSet, name string) *time.Duration {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetDuration(name)
	if err != nil {
		return nil
	}
	return &v
}
