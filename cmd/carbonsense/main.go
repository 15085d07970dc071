// Command carbonsense models multi-year, multi-site battery cell
// production plans and reports emissions, water, materials, and cost.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrata/carbonsense/internal/cli"
	"github.com/agrata/carbonsense/pkg/version"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run executes the root command with signal-aware cancellation. Cobra
// prints the error; run only reports whether one occurred.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}
