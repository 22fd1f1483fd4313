package http

import (
	"errors"
	"strconv"

	"resume-pdf/internal/model"
	"resume-pdf/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error codes beyond the validation codes of package model.
const (
	CodeInvalidEngine = "invalid_engine"
	CodeInvalidLocale = "invalid_locale"
	CodeRenderFailed  = "render_failed"
	CodeInternal      = "internal"
)

type Handler struct {
	gen *usecase.Generator
	log *zap.Logger
}

func NewHandler(g *usecase.Generator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{gen: g, log: log}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(c *fiber.Ctx, status int, code, msg, field string) error {
	return c.Status(status).JSON(errorBody{Error: errorDetail{Code: code, Message: msg, Field: field}})
}

func (h *Handler) request(c *fiber.Ctx) usecase.Request {
	return usecase.Request{
		Body:      c.Body(),
		Locale:    c.Query("lang"),
		Engine:    c.Query("engine"),
		RequestID: requestID(c),
	}
}

// GeneratePDF renders the posted document and returns it as a download.
func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	doc, err := h.gen.Generate(c.UserContext(), h.request(c))
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(doc.Bytes)))
	if doc.Pages > 0 {
		c.Set("X-Page-Count", strconv.Itoa(doc.Pages))
	}
	return c.Status(fiber.StatusOK).Send(doc.Bytes)
}

// Preview returns the HTML rendition of the posted document.
func (h *Handler) Preview(c *fiber.Ctx) error {
	html, err := h.gen.Preview(c.UserContext(), h.request(c))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// fail maps use case errors onto status codes and the JSON error body.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	var rf *usecase.RenderFailure
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, verr.Code, verr.Message, verr.Field)
	case errors.Is(err, usecase.ErrUnknownEngine), errors.Is(err, usecase.ErrEngineDisabled):
		return writeError(c, fiber.StatusBadRequest, CodeInvalidEngine, err.Error(), "engine")
	case errors.Is(err, usecase.ErrUnknownLocale):
		return writeError(c, fiber.StatusBadRequest, CodeInvalidLocale, err.Error(), "lang")
	case errors.As(err, &rf):
		return writeError(c, fiber.StatusInternalServerError, CodeRenderFailed, rf.Error(), "")
	}
	h.log.Error("unhandled error", zap.String("request_id", requestID(c)), zap.Error(err))
	return writeError(c, fiber.StatusInternalServerError, CodeInternal, "internal error", "")
}
