package bootstrap

import (
	"log"

	"study-companion-be/internal/config"
	"study-companion-be/internal/controller"
	"study-companion-be/internal/pkg/logger"
	"study-companion-be/internal/repository/memory"
	"study-companion-be/internal/repository/unitofwork"
	"study-companion-be/internal/service"
	"study-companion-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	FileController    controller.IFileController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// In-Memory read cache for immutable file records
	fileCache := memory.NewFileRecordCache()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(cfg.App.ActivityTopic, pubSub, sysLogger)

	sessionService := service.NewSessionService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, cfg.Ai.Model, publisherService, sysLogger)
	fileService := service.NewFileService(uowFactory, fileCache, publisherService, sysLogger, cfg.App.UploadDir)

	// 5. Controllers
	sessionController := controller.NewSessionController(sessionService)
	chatController := controller.NewChatController(chatService)
	fileController := controller.NewFileController(fileService)
	healthController := controller.NewHealthController(cfg.App.Environment)

	return &Container{
		SessionController: sessionController,
		ChatController:    chatController,
		FileController:    fileController,
		HealthController:  healthController,
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}
}
