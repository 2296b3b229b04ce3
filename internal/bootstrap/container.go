package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"volunteer-matching-be/internal/config"
	"volunteer-matching-be/internal/constant"
	"volunteer-matching-be/internal/controller"
	"volunteer-matching-be/internal/pkg/logger"
	"volunteer-matching-be/internal/repository/unitofwork"
	"volunteer-matching-be/internal/service"
	"volunteer-matching-be/pkg/advisor"
	"volunteer-matching-be/pkg/advisor/generation"
	"volunteer-matching-be/pkg/advisor/retrieval"
	"volunteer-matching-be/pkg/embedding"
	"volunteer-matching-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	EventController       controller.IEventController
	AdvisorController     controller.IAdvisorController
	ApplicationController controller.IApplicationController
	FavoriteController    controller.IFavoriteController
	TagController         controller.ITagController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func initAdvisorLogger() *log.Logger {
	return newAdvisorLogger(filepath.Join(".", "logs", "llm_advisor.log"))
}

func newAdvisorLogger(logPath string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[advisor] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
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

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Advisor Pipeline
	pipelineLogger := initAdvisorLogger()
	retriever := retrieval.NewRetriever(
		embeddingProvider,
		service.NewEventVectorSearcher(uowFactory),
		service.NewEventRecordStore(uowFactory),
		retrieval.Config{
			Threshold: cfg.Advisor.SimilarityThreshold,
			Limit:     cfg.Advisor.CandidateLimit,
		},
		pipelineLogger,
	)
	generator := generation.NewGenerator(llmProvider, constant.AdvisorSystemPolicyV1, pipelineLogger)
	eventAdvisor := advisor.New(retriever, generator, pipelineLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedEventTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedEventTopic,
		uowFactory,
		embeddingProvider,
	)

	eventService := service.NewEventService(uowFactory, publisherService, embeddingProvider)
	advisorService := service.NewAdvisorService(eventAdvisor, sysLogger)
	applicationService := service.NewApplicationService(uowFactory)
	favoriteService := service.NewFavoriteService(uowFactory)
	tagService := service.NewTagService(uowFactory)

	// 6. Controllers
	return &Container{
		EventController:       controller.NewEventController(eventService),
		AdvisorController:     controller.NewAdvisorController(advisorService),
		ApplicationController: controller.NewApplicationController(applicationService),
		FavoriteController:    controller.NewFavoriteController(favoriteService),
		TagController:         controller.NewTagController(tagService),
		ConsumerService:       consumerService,
		Logger:                sysLogger,
	}
}
