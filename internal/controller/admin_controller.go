package controller

import (
	"strconv"

	"ai-voice-assistant-be/internal/pkg/logger"
	"ai-voice-assistant-be/internal/pkg/serverutils"
	"ai-voice-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	GetInteractionTotals(ctx *fiber.Ctx) error
}

// adminController exposes the operator surface: structured log inspection and
// the per-kind interaction counters drained from the event topic.
type adminController struct {
	logs     *logger.ZapLogger
	consumer service.IConsumerService
}

func NewAdminController(logs *logger.ZapLogger, consumer service.IConsumerService) IAdminController {
	return &adminController{
		logs:     logs,
		consumer: consumer,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)

	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
	h.Get("/interactions", c.GetInteractionTotals)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	entries, err := c.logs.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", entries))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // Log ID is a content hash, not UUID

	entry, err := c.logs.GetLogById(logId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", entry))
}

func (c *adminController) GetInteractionTotals(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Interaction totals", c.consumer.Totals()))
}
