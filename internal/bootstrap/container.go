package bootstrap

import (
	"context"
	"log"

	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/controller"
	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/internal/repository/implementation"
	"shopping-assistant-be/internal/repository/memory"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/internal/service"
	"shopping-assistant-be/pkg/ai/router"
	"shopping-assistant-be/pkg/analytics"
	"shopping-assistant-be/pkg/cart"
	"shopping-assistant-be/pkg/dialogue"
	"shopping-assistant-be/pkg/dialogue/clarify"
	"shopping-assistant-be/pkg/dialogue/stitch"
	"shopping-assistant-be/pkg/embedding"
	"shopping-assistant-be/pkg/embedding/jina"
	"shopping-assistant-be/pkg/extraction"
	"shopping-assistant-be/pkg/guardrails"
	"shopping-assistant-be/pkg/llm/factory"
	"shopping-assistant-be/pkg/response"
	"shopping-assistant-be/pkg/search"

	pktNats "shopping-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	ProductController   controller.IProductController
	CartController      controller.ICartController

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles main.go closes on shutdown
	NatsPublisher *pktNats.Publisher
	SysLogger     logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	dialogueLogger := logger.NewPipelineLogger(cfg.App.DialogueLogPath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		sysLogger.Info("Bootstrap", "Using Embedding Provider: OLLAMA", map[string]interface{}{"model": cfg.Ai.OllamaEmbedModel})
	} else {
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		sysLogger.Info("Bootstrap", "Using Embedding Provider: JINA AI", map[string]interface{}{"model": cfg.Ai.JinaModel})
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}

	// The vision provider handles turns that carry an image. Falls back to
	// the text provider when no separate vision model is configured.
	visionProvider := llmProvider
	if cfg.Ai.VisionModel != "" && cfg.Ai.VisionModel != cfg.Ai.LLMModel {
		visionProvider, err = factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.VisionModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.HuggingFaceAPIKey,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
		}
	}
	sysLogger.Info("Bootstrap", "LLM providers ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
		"vision":   cfg.Ai.VisionModel,
	})

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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
		rdb = nil
	}

	sessionRepo := memory.NewSessionRepository(rdb)

	// 5. Dialogue engine components
	classifier := router.NewLLMClassifier(llmProvider, dialogueLogger)
	turnRouter := router.NewRouter(classifier, dialogueLogger)
	checker := guardrails.NewChecker(llmProvider, dialogueLogger)
	extractor := extraction.NewExtractor(visionProvider, dialogueLogger)
	stitcher := stitch.NewLLMStitcher(llmProvider, dialogueLogger)

	retriever := search.NewRetriever(
		embeddingProvider,
		implementation.NewProductEmbeddingRepository(db),
		search.Config{
			ImageWeight: cfg.Dialogue.ImageWeight,
			TextWeight:  cfg.Dialogue.TextWeight,
			TopK:        cfg.Dialogue.TopK,
		},
		dialogueLogger,
	)

	policyConfig := clarify.DefaultConfig()
	policyConfig.THigh = cfg.Dialogue.THigh
	policyConfig.TMin = cfg.Dialogue.TMin
	policyConfig.AmbiguityBound = cfg.Dialogue.AmbiguityBound
	policyConfig.MaxRounds = cfg.Dialogue.MaxClarifications
	policy := clarify.NewPolicy(policyConfig, dialogueLogger)

	responder := response.NewGenerator(llmProvider, dialogueLogger)
	faqAgent := analytics.NewAgent(llmProvider, db, dialogueLogger)

	cartManager := cart.NewManager(implementation.NewCartRepository(db), dialogueLogger)
	if natsPub != nil {
		cartManager = cartManager.WithEvents(natsPub)
	}

	orchestrator := dialogue.NewOrchestrator(
		turnRouter,
		checker,
		extractor,
		stitcher,
		retriever,
		policy,
		responder,
		cartManager,
		faqAgent,
		dialogueLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Topics.ProductEmbed, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.ProductEmbed,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	assistantService := service.NewAssistantService(uowFactory, sessionRepo, orchestrator, natsPub, dialogueLogger)
	productService := service.NewProductService(uowFactory, publisherService, retriever)
	cartService := service.NewCartService(uowFactory, dialogueLogger)

	// Event monitor (worker)
	if natsSub != nil {
		monitor := service.NewEventMonitorService(natsSub, sysLogger)
		go monitor.Start()
	}

	// 7. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, cfg.App.ImageUploadDir),
		ProductController:   controller.NewProductController(productService),
		CartController:      controller.NewCartController(cartService),

		ConsumerService: consumerService,
		NatsPublisher:   natsPub,
		SysLogger:       sysLogger,
	}
}
