package http

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/hr-trainer/api/http/handlers"
)

type Options struct {
	CORSOrigin string
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
}

// NewApp builds the Fiber app with the common middleware stack and error envelope.
func NewApp(opts Options, log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hr-trainer",
		ErrorHandler: handlers.NewErrorHandler(log),
		BodyLimit:    1 << 20,
		ReadTimeout:  30 * time.Second,
		// a completion can wait for several model attempts
		WriteTimeout: 3 * time.Minute,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(helmet.New())
	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(compress.New())
	if opts.AccessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Output: opts.AccessLog,
			Format: "${time} ${status} ${latency} ${method} ${path}\n",
		}))
	}
	return app
}
