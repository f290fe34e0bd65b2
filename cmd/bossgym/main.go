package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bossgym/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Fatal("bossgym failed", err, nil)
	}
}
