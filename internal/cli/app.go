package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"todo-list/internal/domain"
	"todo-list/internal/logging"
	"todo-list/internal/services"
	"todo-list/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// IOStreams are the terminal streams a command reads from and writes to.
type IOStreams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App represents the main CLI application. It renders the view controller
// state and is the controller's Notifier.
type App struct {
	controller *view.Controller
	out        io.Writer
	errOut     io.Writer
	in         *bufio.Reader
	assumeYes  bool
	styles     styles
}

type styles struct {
	title   lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	muted   lipgloss.Style
	alert   lipgloss.Style
	label   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true),
		done:    r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		pending: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		alert:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		label:   r.NewStyle().Bold(true).Width(13),
	}
}

var _ view.Confirmer = (*App)(nil)

// NewApp creates a new CLI application instance with dependency injection
func NewApp(svc services.TaskService, streams IOStreams, log logging.Logger) *App {
	app := &App{
		out:    streams.Out,
		errOut: streams.Err,
		in:     bufio.NewReader(streams.In),
		styles: newStyles(streams.Out),
	}
	app.controller = view.NewController(svc, app, log)
	return app
}

// Controller returns the view controller driven by the commands.
func (a *App) Controller() *view.Controller {
	return a.controller
}

// Alert implements view.Notifier.
func (a *App) Alert(message string) {
	fmt.Fprintln(a.errOut, a.styles.alert.Render("Error: "+message))
}

// Confirm implements view.Confirmer by prompting on the input stream.
func (a *App) Confirm(message string) bool {
	if a.assumeYes {
		return true
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", message)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// renderList draws the list screen.
func (a *App) renderList(state view.State) {
	fmt.Fprintln(a.out, a.styles.title.Render("TODO LIST"))
	if state.IsEmpty() {
		fmt.Fprintln(a.out, a.styles.muted.Render(view.EmptyListMessage+" Add one with `todo add`."))
		return
	}
	for _, task := range state.Tasks {
		fmt.Fprintf(a.out, "%s %s  %s\n", a.statusMark(task.Status), task.Name, a.styles.muted.Render("("+task.ID+")"))
		if task.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", task.Description)
		}
	}
}

// renderTask draws the detail screen for one task.
func (a *App) renderTask(task domain.Task) {
	row := func(label, value string) {
		fmt.Fprintf(a.out, "%s%s\n", a.styles.label.Render(label), value)
	}
	row("ID:", task.ID)
	row("Name:", task.Name)
	row("Status:", a.statusMark(task.Status)+" "+task.Status.String())
	row("Description:", task.Description)
}

func (a *App) statusMark(status domain.Status) string {
	if status == domain.StatusComplete {
		return a.styles.done.Render("[x]")
	}
	return a.styles.pending.Render("[ ]")
}
