package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-pdf/internal/domain"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
	"resume-pdf/internal/render"
)

const (
	EngineLayout = "layout"
	EngineChrome = "chrome"
)

var (
	ErrUnknownEngine  = errors.New("unknown engine")
	ErrEngineDisabled = errors.New("engine disabled")
	ErrUnknownLocale  = errors.New("unknown locale")
	ErrInvalidOutput  = errors.New("engine produced no PDF")
)

// Engine turns a validated document into PDF bytes. Implementations must be
// safe for concurrent calls.
type Engine interface {
	Name() string
	Render(ctx context.Context, doc model.Resume, loc *locale.Locale, now time.Time) ([]byte, render.Result, error)
}

// HTMLRenderer prints an HTML page to PDF.
type HTMLRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type GenerationsRepo interface {
	Save(ctx context.Context, g *domain.Generation) error
}

// Request is one generate or preview call. Body is the raw JSON document.
type Request struct {
	Body      []byte
	Locale    string
	Engine    string
	RequestID string
}

// Document is a finished PDF. Pages is zero when the engine cannot tell.
type Document struct {
	Bytes    []byte
	Pages    int
	Filename string
	Engine   string
}

// RenderFailure wraps anything that went wrong after validation passed,
// including recovered panics.
type RenderFailure struct {
	Engine string
	Err    error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("render failed (%s): %v", e.Engine, e.Err)
}

func (e *RenderFailure) Unwrap() error { return e.Err }
