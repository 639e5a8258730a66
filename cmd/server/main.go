package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/pipeline/app"
	"github.com/dmitrymomot/pipeline/core/logger"
	"github.com/dmitrymomot/pipeline/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New()
	if err != nil {
		logger.New().Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	a.Use(
		middleware.RequestID(),
		middleware.Logging(a.Logger()),
		middleware.Compress(),
	)
	a.UseRouting()
	a.UseEndpoints()

	registerRoutes(a, time.Now)

	if err := a.Run(ctx); err != nil {
		os.Exit(1)
	}
}
