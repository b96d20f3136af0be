package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"untile/internal/cli"
	"untile/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		logging.BuildLogger().WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
