package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todo-list/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.IOStreams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err := root.Execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
