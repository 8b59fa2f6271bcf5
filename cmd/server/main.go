package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cachemir/cachemir-core/internal/server"
	"github.com/cachemir/cachemir-core/pkg/config"
)

func main() {
	cfg := config.LoadServerConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	log.Printf("starting cachemir-core server with config: %+v", cfg)

	srv := server.New(
		cfg.Host,
		cfg.Port,
		time.Duration(cfg.ReadTimeoutSecs)*time.Second,
		time.Duration(cfg.WriteTimeoutSecs)*time.Second,
		time.Duration(cfg.SweepIntervalSecs)*time.Second,
		cfg.RehashSteps,
	)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("shutting down server...")
	cancel()
	log.Println("server stopped")
}
