package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bookwise/internal/config"
	"bookwise/internal/database"
	"bookwise/internal/modules/notification"
	"bookwise/internal/pkg/rabbitmq"
	"bookwise/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL)
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	worker := notification.NewWorker(repository.NewOutboxRepository(db), publisher, 50, 2*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("outbox worker started")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	log.Println("outbox worker stopped")
}
