package bootstrap

import (
	"context"
	"log"

	"task-notes-be/internal/config"
	"task-notes-be/internal/controller"
	"task-notes-be/internal/pkg/logger"
	"task-notes-be/internal/repository/implementation"
	"task-notes-be/internal/repository/memory"
	"task-notes-be/internal/repository/redisrepo"
	"task-notes-be/internal/service"
	pktNats "task-notes-be/pkg/nats"
	"task-notes-be/pkg/taskservice"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	SnapshotRefresher service.ISnapshotRefresherService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Repositories
	noteRepo := implementation.NewNoteRepository(db)
	snapshotRepo := implementation.NewTaskSnapshotRepository(db)
	idempotencyRepo := redisrepo.NewIdempotencyRepository(rdb)
	snapshotCache := memory.NewSnapshotCache()

	// 4. Outbound clients
	taskClient := taskservice.NewClient(
		cfg.TaskService.BaseURL,
		cfg.TaskService.RequestTimeout,
		cfg.TaskService.MaxRetries,
		cfg.TaskService.InitialBackoff,
	)

	// 5. Services
	taskValidator := service.NewTaskValidatorService(snapshotCache, snapshotRepo, taskClient, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)
	consumerService := service.NewAuditConsumerService(pubSub, cfg.App.AuditTopic, auditLogger)

	noteService := service.NewNoteService(
		noteRepo,
		idempotencyRepo,
		taskValidator,
		publisherService,
		natsPub,
		sysLogger,
	)

	snapshotRefresher := service.NewSnapshotRefresherService(
		natsSub,
		taskClient,
		snapshotRepo,
		snapshotCache,
		sysLogger,
	)

	// 6. Controllers
	noteController := controller.NewNoteController(noteService)
	healthController := controller.NewHealthController(db, rdb)

	return &Container{
		NoteController:    noteController,
		HealthController:  healthController,
		ConsumerService:   consumerService,
		SnapshotRefresher: snapshotRefresher,
	}
}
