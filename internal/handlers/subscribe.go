package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/utils"
)

// SubscribeHandler captures landing page emails.
type SubscribeHandler struct {
	subscribers services.SubscriberStore
}

func NewSubscribeHandler(subscribers services.SubscriberStore) *SubscribeHandler {
	return &SubscribeHandler{subscribers: subscribers}
}

type subscribeRequest struct {
	Email  string `json:"email" validate:"required,email,max=320"`
	Locale string `json:"locale" validate:"omitempty,alpha,max=8"`
}

func (h *SubscribeHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email"})
	}

	locale := strings.ToUpper(req.Locale)
	if locale == "" {
		locale = "EN"
	}

	if err := h.subscribers.Subscribe(c.UserContext(), &models.Subscriber{
		Email:        req.Email,
		Locale:       locale,
		SubscribedAt: time.Now(),
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
