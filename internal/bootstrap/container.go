package bootstrap

import (
	"log"
	"time"

	"ai-voice-assistant-be/internal/config"
	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/controller"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/internal/repository/memory"
	"ai-voice-assistant-be/internal/service"
	"ai-voice-assistant-be/internal/websocket"
	"ai-voice-assistant-be/pkg/answer"
	"ai-voice-assistant-be/pkg/llm/factory"
	"ai-voice-assistant-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	AdminController     controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI boundary
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

	answerAdapter := answer.NewAdapter(llmProvider, time.Duration(cfg.Ai.AnswerTimeout)*time.Second, sysLogger)

	// 4. Knowledge base and retrieval
	kbService := service.NewKnowledgeBaseService(
		cfg.Kb.URL,
		cfg.Kb.AcceptLanguage,
		time.Duration(cfg.Kb.CacheTTLMin)*time.Minute,
		sysLogger,
	)
	engine := retrieval.NewEngine()

	// 5. Interaction pipeline
	publisherService := service.NewPublisherService(constant.AssistantInteractionTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.AssistantInteractionTopic, sysLogger)

	assistantService := service.NewAssistantService(
		kbService,
		engine,
		answerAdapter,
		publisherService,
		cfg.Ai.AssistantMode,
		sysLogger,
	)

	// 6. Voice sessions over WebSocket
	voiceLogger := logger.NewIsolatedLogger(cfg.App.VoiceLogFilePath)
	wsHub := websocket.NewHub(voiceLogger)
	go wsHub.Run()

	sessionRepo := memory.NewSessionRepository()
	voiceSessionService := service.NewVoiceSessionService(
		sessionRepo,
		wsHub,
		assistantService,
		kbService,
		cfg,
		voiceLogger,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, voiceSessionService, wsHub, sysLogger),
		AdminController:     controller.NewAdminController(sysLogger, consumerService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
