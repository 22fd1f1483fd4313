package http

import (
	"time"

	"resume-pdf/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// AccessLog logs one line per request and feeds the HTTP metrics. Errors
// returned further down the chain are rendered here so the logged status is
// the one the client receives.
func AccessLog(log *zap.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		took := time.Since(start)

		route := c.Route().Path
		m.ObserveHTTP(route, c.Method(), status, took)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", took),
			zap.String("request_id", requestID(c)),
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}
