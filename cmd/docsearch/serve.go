package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run executes the serve command until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(deps.Stdout, "Serving %s on http://%s\n", deps.Config.OutputDir, c.Addr)

	if err := deps.Server.ListenAndServe(ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
