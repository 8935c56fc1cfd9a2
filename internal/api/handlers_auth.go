package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/session"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Remember bool   `json:"remember"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	}

	profile, err := handler.backend.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return backendError(c, err)
	}

	if err := handler.sessions.Save(session.Session{
		UserID:   profile.UserID,
		Email:    profile.Email,
		Remember: input.Remember,
	}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save session")
	}

	state := handler.switchUser(profile.UserID)
	if err := state.flowLog.Load(c.Context()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load cycle data")
	}

	return c.JSON(profile)
}

func (handler *Handler) Signup(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	}

	profile, err := handler.backend.Signup(c.Context(), input.Email, input.Password, strings.TrimSpace(input.Name))
	if err != nil {
		return backendError(c, err)
	}

	if err := handler.sessions.Save(session.Session{
		UserID:   profile.UserID,
		Email:    profile.Email,
		Remember: input.Remember,
	}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save session")
	}

	handler.switchUser(profile.UserID)
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.sessions.Clear(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear session")
	}
	handler.switchUser(session.GuestUserID)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetSession(c *fiber.Ctx) error {
	current, err := handler.sessions.Load()
	if err != nil {
		return c.JSON(fiber.Map{"loggedIn": false, "user_id": session.GuestUserID})
	}
	return c.JSON(fiber.Map{
		"loggedIn": true,
		"user_id":  current.UserID,
		"email":    current.Email,
	})
}
