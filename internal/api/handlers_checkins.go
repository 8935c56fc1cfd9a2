package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/agent"
	"github.com/benjihealth/sanctuary/internal/models"
)

// CreateCheckIn stores the submission, then asks the agent for a response.
// The check-in is already saved when the agent fails, so the journal never
// loses an entry to a missing API key or a network problem.
func (handler *Handler) CreateCheckIn(c *fiber.Ctx) error {
	checkIn := models.CheckIn{}
	if err := c.BodyParser(&checkIn); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.checkIns.Save(&checkIn); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save check-in")
	}

	response := fiber.Map{"checkIn": checkIn}

	stats, err := handler.checkIns.Statistics()
	var statsPtr *models.CheckInStats
	if err == nil {
		statsPtr = &stats
	}

	message, err := handler.agent.CheckInResponse(c.Context(), checkIn, statsPtr)
	if err != nil {
		if errors.Is(err, agent.ErrMissingAPIKey) {
			response["agentMessage"] = agent.MissingAPIKeyMessage
		} else {
			response["agentError"] = err.Error()
		}
		return c.Status(fiber.StatusCreated).JSON(response)
	}

	insight := models.Insight{
		Type:      models.InsightTypeCheckIn,
		CheckInID: checkIn.ID,
		Message:   message,
	}
	if err := handler.checkIns.SaveInsight(&insight); err == nil {
		response["insight"] = insight
	}
	response["agentMessage"] = message

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (handler *Handler) ListCheckIns(c *fiber.Ctx) error {
	if days, err := strconv.Atoi(c.Query("days")); err == nil && days > 0 {
		recent, err := handler.checkIns.Recent(days)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load check-ins")
		}
		return c.JSON(recent)
	}

	all, err := handler.checkIns.All()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load check-ins")
	}
	return c.JSON(all)
}

func (handler *Handler) CheckInStats(c *fiber.Ctx) error {
	stats, err := handler.checkIns.Statistics()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute statistics")
	}
	return c.JSON(stats)
}

func (handler *Handler) ListInsights(c *fiber.Ctx) error {
	insights, err := handler.checkIns.Insights()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load insights")
	}
	return c.JSON(insights)
}

func (handler *Handler) GenerateWeeklyInsights(c *fiber.Ctx) error {
	recent, err := handler.checkIns.Recent(7)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load check-ins")
	}

	message, err := handler.agent.WeeklyInsights(c.Context(), recent)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrNotEnoughCheckIns):
			return apiError(c, fiber.StatusConflict, agent.NotEnoughCheckInsMessage)
		case errors.Is(err, agent.ErrMissingAPIKey):
			return apiError(c, fiber.StatusPreconditionFailed, agent.MissingAPIKeyMessage)
		default:
			return apiError(c, fiber.StatusBadGateway, "failed to generate insights")
		}
	}

	insight := models.Insight{
		Type:    models.InsightTypeWeekly,
		Message: message,
	}
	if err := handler.checkIns.SaveInsight(&insight); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save insights")
	}
	return c.JSON(insight)
}
