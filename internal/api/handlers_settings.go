package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type apiKeyInput struct {
	APIKey string `json:"apiKey"`
}

func (handler *Handler) GetAPIKeyStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"set": handler.apiKey() != ""})
}

// SetAPIKey stores the key; an empty key removes the stored one.
func (handler *Handler) SetAPIKey(c *fiber.Ctx) error {
	input := apiKeyInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	key := strings.TrimSpace(input.APIKey)
	if key == "" {
		if err := handler.kv.Delete(apiKeyStorageKey); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to remove API key")
		}
		return c.JSON(fiber.Map{"set": false})
	}

	if err := handler.kv.Set(apiKeyStorageKey, key); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save API key")
	}
	return c.JSON(fiber.Map{"set": true})
}

// ExportData bundles everything the companion stores locally for download.
func (handler *Handler) ExportData(c *fiber.Ctx) error {
	state := handler.currentState()

	journal, err := handler.checkIns.Export()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export check-ins")
	}

	medications, err := state.medications.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export medications")
	}

	return c.JSON(fiber.Map{
		"exportedAt":  time.Now(),
		"userId":      state.userID,
		"checkIns":    journal.CheckIns,
		"insights":    journal.Insights,
		"flowLog":     state.flowLog.Entries(),
		"medications": medications,
		"chatHistory": state.chatStore.HistoryList(),
	})
}

// ClearAllData wipes the local journal and chat history. Backend-synced data
// (flow log, medications) stays untouched.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.checkIns.ClearAll(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear check-ins")
	}
	state := handler.currentState()
	state.chatStore.ClearHistory()
	return c.JSON(fiber.Map{"ok": true})
}
