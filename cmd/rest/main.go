package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopping-assistant-be/internal/bootstrap"
	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/server"
	"shopping-assistant-be/internal/tracer"
	"shopping-assistant-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Embedding Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if container.NatsPublisher != nil {
			container.NatsPublisher.Close()
		}
		_ = container.SysLogger.Sync()
		_ = srv.GetApp().Shutdown()
	}()

	// 8. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
