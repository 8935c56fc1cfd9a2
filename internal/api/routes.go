package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/signup", handler.Signup)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.GetSession)

	chat := api.Group("/chat")
	chat.Post("", handler.SendChatMessage)
	chat.Post("/new", handler.StartFreshChat)
	chat.Get("/history", handler.ChatHistoryList)
	chat.Get("/history/:id", handler.OpenChatSession)
	chat.Delete("/history", handler.ClearChatHistory)

	cycle := api.Group("/cycle")
	cycle.Get("/status", handler.CycleStatus)
	cycle.Get("/calendar/:year/:month", handler.CycleCalendar)
	cycle.Get("/flow/:date", handler.GetFlowEntry)
	cycle.Put("/flow/:date", handler.UpsertFlowEntry)
	cycle.Delete("/flow/:date", handler.DeleteFlowEntry)
	cycle.Get("/recommendations", handler.CycleRecommendations)
	cycle.Get("/reminder", handler.FlowReminderStatus)
	cycle.Post("/reminder/dismiss", handler.DismissFlowReminder)

	checkins := api.Group("/checkins")
	checkins.Post("", handler.CreateCheckIn)
	checkins.Get("", handler.ListCheckIns)
	checkins.Get("/stats", handler.CheckInStats)
	checkins.Get("/insights", handler.ListInsights)
	checkins.Post("/weekly-insights", handler.GenerateWeeklyInsights)

	medications := api.Group("/medications")
	medications.Get("", handler.ListMedications)
	medications.Post("", handler.AddMedication)
	medications.Put("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeleteMedication)
	medications.Get("/schedule", handler.MedicationSchedule)

	settings := api.Group("/settings")
	settings.Get("/api-key", handler.GetAPIKeyStatus)
	settings.Put("/api-key", handler.SetAPIKey)
	settings.Get("/export", handler.ExportData)
	settings.Post("/clear", handler.ClearAllData)
}
