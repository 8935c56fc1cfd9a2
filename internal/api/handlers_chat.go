package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/services"
)

type chatInput struct {
	Message string `json:"message"`
}

func (handler *Handler) SendChatMessage(c *fiber.Ctx) error {
	input := chatInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state := handler.currentState()
	reply, err := state.chat.Send(c.Context(), input.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyChatMessage) {
			return apiError(c, fiber.StatusBadRequest, "message is empty")
		}
		return apiError(c, fiber.StatusBadGateway, services.ChatUnavailableMessage)
	}

	return c.JSON(fiber.Map{"response": reply})
}

func (handler *Handler) StartFreshChat(c *fiber.Ctx) error {
	state := handler.currentState()
	state.chatStore.StartFresh()
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChatHistoryList(c *fiber.Ctx) error {
	state := handler.currentState()
	return c.JSON(state.chatStore.HistoryList())
}

func (handler *Handler) OpenChatSession(c *fiber.Ctx) error {
	state := handler.currentState()
	messages, ok := state.chatStore.OpenSession(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "session not found")
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (handler *Handler) ClearChatHistory(c *fiber.Ctx) error {
	state := handler.currentState()
	state.chatStore.ClearHistory()
	return c.JSON(fiber.Map{"ok": true})
}
