package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckHandler struct {
	store Pinger
}

func NewCheckHandler(store Pinger) *CheckHandler {
	return &CheckHandler{store: store}
}

func (h *CheckHandler) HandleHealthy(c *fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"result": "ok"})
}
