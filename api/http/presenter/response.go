package presenter

import "github.com/gofiber/fiber/v2"

// Envelope — общий формат ответа API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: v})
}

// List adds the item count next to the data.
func List(c *fiber.Ctx, status int, v any, count int) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: v, Count: &count})
}

// Message sends data along with a human-readable confirmation.
func Message(c *fiber.Ctx, status int, v any, message string) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: v, Message: message})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: message})
}
