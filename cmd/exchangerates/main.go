package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"exchange-rates/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.New("error").WithError(err).Error("exchangerates failed")
		stop()
		os.Exit(1)
	}
}
