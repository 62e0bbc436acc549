package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"asyncmock/internal/cli"
)

func main() {
	// Cancel running checks on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		logrus.Errorf("asyncmock: %v", err)
		cancel()
		os.Exit(1)
	}
}
