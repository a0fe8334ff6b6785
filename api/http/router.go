package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/artem13815/hr-trainer/api/http/handlers"
	"github.com/artem13815/hr-trainer/api/http/presenter"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Interview *handlers.InterviewHandler
	RH        *handlers.RHHandler
	Training  *handlers.TrainingHandler
}

// Limits for the general per-IP rate limiter. The AI chat and evaluation
// routes have their own fixed budgets.
type Limits struct {
	Window time.Duration
	Max    int
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, limits Limits) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)

	api := app.Group("/api", rateLimit(limits.Max, limits.Window,
		"Muitas requisições deste IP, tente novamente mais tarde."))

	iv := api.Group("/interviews")
	iv.Post("/start", h.Interview.Start)
	iv.Get("/statistics", h.Interview.Statistics)
	iv.Post("/:id/message", rateLimit(20, 15*time.Minute,
		"Muitas mensagens enviadas, aguarde alguns minutos."), h.Interview.PostMessage)
	iv.Post("/:id/complete", rateLimit(10, time.Hour,
		"Limite de avaliações atingido, tente novamente mais tarde."), h.Interview.Complete)
	iv.Get("/:id", h.Interview.Get)

	rh := api.Group("/rh")
	rh.Get("/dashboard", h.RH.Dashboard)
	rh.Get("/export.xlsx", h.RH.Export)
	rh.Get("/interviews/:id", h.RH.Interview)
	rh.Get("/candidates/:id", h.RH.Candidate)
	rh.Get("/evaluations/:id", h.RH.EvaluationReport)

	tr := api.Group("/training")
	tr.Get("/prompts", h.Training.ListPrompts)
	tr.Post("/prompts", h.Training.CreatePrompt)
	tr.Put("/prompts/:id", h.Training.UpdatePrompt)
	tr.Delete("/prompts/:id", h.Training.DeletePrompt)
	tr.Get("/stats", h.Training.Stats)
	tr.Get("/sessions", h.Training.ListSessions)
	tr.Post("/sessions", h.Training.CreateSession)
	tr.Get("/template.xlsx", h.Training.Template)
}

func rateLimit(limit int, window time.Duration, message string) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return presenter.Error(c, fiber.StatusTooManyRequests, message)
		},
	})
}
