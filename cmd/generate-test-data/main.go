package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mvp-joe/codebase-testdata/internal/cli"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	// Interrupts cancel the run between batches; committed batches stay.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.Execute(ctx, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
