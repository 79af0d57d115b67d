package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yudaprama/timeid/internal/cli"
	"github.com/yudaprama/timeid/internal/logger"
	"github.com/yudaprama/timeid/internal/models"
)

func main() {
	// Default logger until the command has read its config.
	logger.InitLogger(models.LogConfig{Level: "info", Output: "console"})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRoot().ExecuteContext(ctx); err != nil {
		stop()
		logger.S().Fatalf("timeid: %v", err)
	}
}
