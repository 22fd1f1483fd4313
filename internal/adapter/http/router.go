package http

import (
	"errors"
	"time"

	"resume-pdf/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	BodyLimit   int
	CORSOrigins string
	// Metrics is served on /metrics when set.
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewApp wires middleware and routes around h.
func NewApp(h *Handler, opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "resume-pdf",
		BodyLimit:             opts.BodyLimit,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          2 * time.Minute,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog(log, opts.Metrics))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type,X-Request-Id",
		ExposeHeaders: "Content-Disposition,X-Page-Count,X-Request-Id",
	}))

	app.Post("/generate_pdf", h.GeneratePDF)
	app.Post("/api/curriculo", h.GeneratePDF)
	app.Post("/preview", h.Preview)
	app.Get("/health", h.Health)
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}
	return app
}

// errorHandler renders framework errors (unknown route, oversized body,
// recovered panics) in the same JSON shape as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, httpCode(fe.Code), fe.Message, "")
	}
	return writeError(c, fiber.StatusInternalServerError, CodeInternal, err.Error(), "")
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case fiber.StatusBadRequest:
		return "bad_request"
	}
	if status >= 500 {
		return CodeInternal
	}
	return "http_error"
}
