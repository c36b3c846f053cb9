package controller

import (
	"errors"

	"ai-voice-assistant-be/internal/constant"
	"ai-voice-assistant-be/internal/dto"
	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/internal/pkg/serverutils"
	"ai-voice-assistant-be/internal/service"
	internalWS "ai-voice-assistant-be/internal/websocket"
	"ai-voice-assistant-be/pkg/answer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistant service.IAssistantService
	sessions  service.IVoiceSessionService
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewAssistantController(
	assistant service.IAssistantService,
	sessions service.IVoiceSessionService,
	hub *internalWS.Hub,
	log logger.ILogger,
) IAssistantController {
	return &assistantController{
		assistant: assistant,
		sessions:  sessions,
		hub:       hub,
		logger:    log,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")

	h.Post("/ask", c.Ask)

	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.CloseSession)
	h.Get("/sessions/:id/events", c.ServeWs)
}

// Ask answers a typed question. The answer text is always Burmese-facing:
// model failures come back as the fixed fallback strings, never as raw error
// detail.
func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.assistant.Ask(ctx.UserContext(), req.Question)
	if err != nil {
		if errors.Is(err, answer.ErrRegionRestricted) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, constant.AnswerRegionRestricted))
		}
		c.logger.Error("AssistantController", "Ask failed", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, constant.AnswerDispatchFailure))
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer", res))
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.sessions.CreateSession(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *assistantController) GetSession(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	machine, found := c.sessions.Machine(sessionID)
	if !found {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", machine.Snapshot()))
}

func (c *assistantController) CloseSession(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	c.sessions.CloseSession(sessionID)
	return ctx.JSON(serverutils.SuccessResponse[any]("Session closed", nil))
}

// ServeWs upgrades the session's capability channel. The first frame the tab
// receives is the current state snapshot, so reconnects resume mid-phase.
func (c *assistantController) ServeWs(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	machine, found := c.sessions.Machine(sessionID)
	if !found {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("AssistantController", "Starting voice session socket", map[string]interface{}{"session_id": sessionID})
			initial := &internalWS.Envelope{Type: "state", Data: machine.Snapshot()}
			internalWS.ServeWs(c.hub, conn, sessionID, initial, func(payload []byte) {
				c.sessions.HandleClientEvent(sessionID, payload)
			})
			c.logger.Info("AssistantController", "Voice session socket ended", map[string]interface{}{"session_id": sessionID})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
