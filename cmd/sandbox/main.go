package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/xminds/internal/sandbox/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sandbox, err := app.New(cfg)
	if err != nil {
		log.Fatalf("start sandbox: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sandbox.Run(ctx); err != nil {
		stop()
		log.Fatalf("sandbox: %v", err)
	}
}
