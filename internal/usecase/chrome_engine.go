package usecase

import (
	"context"
	"time"

	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
	"resume-pdf/internal/preview"
	"resume-pdf/internal/render"
)

// ChromeEngine prints the HTML preview through a headless browser. It does
// not know the page count of its output.
type ChromeEngine struct {
	renderer HTMLRenderer
}

func NewChromeEngine(r HTMLRenderer) *ChromeEngine { return &ChromeEngine{renderer: r} }

func (e *ChromeEngine) Name() string { return EngineChrome }

func (e *ChromeEngine) Render(ctx context.Context, doc model.Resume, loc *locale.Locale, now time.Time) ([]byte, render.Result, error) {
	html, err := preview.HTML(render.NewFormatter(loc), doc, now)
	if err != nil {
		return nil, render.Result{}, err
	}
	out, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, render.Result{}, err
	}
	return out, render.Result{}, nil
}
