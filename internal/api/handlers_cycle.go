package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/backend"
	"github.com/benjihealth/sanctuary/internal/models"
	"github.com/benjihealth/sanctuary/internal/services"
)

const cycleRecommendationsCachePrefix = "Benji_cycle_recommendations_cache_"

func (handler *Handler) CycleStatus(c *fiber.Ctx) error {
	state := handler.currentState()
	entries := state.flowLog.Entries()
	now := time.Now()

	response := fiber.Map{
		"hasData":  len(entries) > 0,
		"cycleDay": nil,
		"phase":    nil,
	}

	if start, ok := services.FindLastPeriodStart(entries); ok {
		response["periodStart"] = services.FormatDay(start)
	}
	if cycleDay, ok := services.CycleDayFromLog(entries, now); ok {
		response["cycleDay"] = cycleDay
		if phase, ok := services.PhaseForDay(cycleDay); ok {
			response["phase"] = phase
			response["recommendations"] = services.RecommendationsForPhase(phase.Name)
		}
	}

	return c.JSON(response)
}

func (handler *Handler) CycleCalendar(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 1970 || year > 2200 {
		return apiError(c, fiber.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	state := handler.currentState()
	days := services.BuildCalendarMonth(state.flowLog.Entries(), year, time.Month(month), time.Now())
	return c.JSON(fiber.Map{"year": year, "month": month, "days": days})
}

func (handler *Handler) GetFlowEntry(c *fiber.Ctx) error {
	state := handler.currentState()
	entry, ok := state.flowLog.Entry(c.Params("date"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "no entry for date")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpsertFlowEntry(c *fiber.Ctx) error {
	entry := models.FlowEntry{}
	if err := c.BodyParser(&entry); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state := handler.currentState()
	if err := state.flowLog.Upsert(c.Context(), c.Params("date"), entry); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFlowDate):
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		case errors.Is(err, services.ErrInvalidFlowValue):
			return apiError(c, fiber.StatusBadRequest, "invalid flow value")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteFlowEntry(c *fiber.Ctx) error {
	state := handler.currentState()
	if err := state.flowLog.Delete(c.Context(), c.Params("date")); err != nil {
		if errors.Is(err, services.ErrInvalidFlowDate) {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// CycleRecommendations serves the fixed phase cards, or the backend's
// personalized set when asked. Personalized results are cached locally so
// the agent only runs on an explicit refresh.
func (handler *Handler) CycleRecommendations(c *fiber.Ctx) error {
	state := handler.currentState()

	if c.QueryBool("personalized") {
		cacheKey := cycleRecommendationsCachePrefix + state.userID
		if !c.QueryBool("refresh") {
			if raw, found, err := handler.kv.Get(cacheKey); err == nil && found {
				var cached backend.CycleRecommendations
				if err := json.Unmarshal([]byte(raw), &cached); err == nil {
					return c.JSON(cached)
				}
			}
		}

		recs, err := handler.backend.GetCycleRecommendations(c.Context(), state.userID)
		if err != nil {
			return backendError(c, err)
		}
		if data, err := json.Marshal(recs); err == nil {
			_ = handler.kv.Set(cacheKey, string(data))
		}
		return c.JSON(recs)
	}

	entries := state.flowLog.Entries()
	cycleDay, ok := services.CycleDayFromLog(entries, time.Now())
	if !ok {
		return c.JSON(fiber.Map{"phase": nil, "recommendations": []services.Recommendation{}})
	}
	phase, ok := services.PhaseForDay(cycleDay)
	if !ok {
		return c.JSON(fiber.Map{"phase": nil, "recommendations": []services.Recommendation{}})
	}
	return c.JSON(fiber.Map{
		"phase":           phase,
		"recommendations": services.RecommendationsForPhase(phase.Name),
	})
}

func (handler *Handler) FlowReminderStatus(c *fiber.Ctx) error {
	state := handler.currentState()
	show := state.reminder.ShouldShow(state.flowLog.Entries(), time.Now())
	return c.JSON(fiber.Map{"show": show})
}

func (handler *Handler) DismissFlowReminder(c *fiber.Ctx) error {
	state := handler.currentState()
	state.reminder.Dismiss(state.flowLog.Entries())
	return c.JSON(fiber.Map{"ok": true})
}
