package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/services"
)

type medicationInput struct {
	Name      string `json:"name"`
	Strength  string `json:"strength"`
	Frequency string `json:"frequency"`
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	state := handler.currentState()
	medications, err := state.medications.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load medications")
	}
	return c.JSON(medications)
}

func (handler *Handler) AddMedication(c *fiber.Ctx) error {
	input := medicationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state := handler.currentState()
	medication, err := state.medications.Add(c.Context(), input.Name, input.Strength, input.Frequency)
	if err != nil {
		if errors.Is(err, services.ErrMedicationName) {
			return apiError(c, fiber.StatusBadRequest, "medication name is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save medication")
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	input := medicationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state := handler.currentState()
	medication, err := state.medications.Update(c.Context(), c.Params("id"), input.Name, input.Strength, input.Frequency)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMedicationName):
			return apiError(c, fiber.StatusBadRequest, "medication name is required")
		case errors.Is(err, services.ErrMedicationNotFound):
			return apiError(c, fiber.StatusNotFound, "medication not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save medication")
		}
	}
	return c.JSON(medication)
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	state := handler.currentState()
	if err := state.medications.Delete(c.Context(), c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete medication")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) MedicationSchedule(c *fiber.Ctx) error {
	state := handler.currentState()
	schedule, err := state.medications.Schedule(c.Context(), c.QueryBool("use_ai"), c.QueryBool("refresh"))
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(schedule)
}
