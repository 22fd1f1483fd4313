package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"resume-pdf/internal/domain"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/metrics"
	"resume-pdf/internal/model"
	"resume-pdf/internal/preview"
	"resume-pdf/internal/render"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "resume-pdf/usecase"

var pdfMagic = []byte("%PDF")

// Generator validates incoming documents and renders them with one of the
// registered engines. It holds no per-request state.
type Generator struct {
	engines       map[string]Engine
	defaultLocale *locale.Locale
	repo          GenerationsRepo
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	log           *zap.Logger
	now           func() time.Time
}

type Option func(*Generator)

// WithEngine registers an additional engine under its Name.
func WithEngine(e Engine) Option {
	return func(g *Generator) { g.engines[e.Name()] = e }
}

func WithRepo(r GenerationsRepo) Option { return func(g *Generator) { g.repo = r } }

func WithMetrics(m *metrics.Metrics) Option { return func(g *Generator) { g.metrics = m } }

func WithLogger(l *zap.Logger) Option { return func(g *Generator) { g.log = l } }

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Generator) { g.tracer = tp.Tracer(tracerName) }
}

func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

func WithDefaultLocale(l *locale.Locale) Option {
	return func(g *Generator) {
		if l != nil {
			g.defaultLocale = l
		}
	}
}

// NewGenerator uses layout as the default engine.
func NewGenerator(layout Engine, opts ...Option) *Generator {
	g := &Generator{
		engines:       map[string]Engine{EngineLayout: layout},
		defaultLocale: locale.Default(),
		tracer:        otel.Tracer(tracerName),
		log:           zap.NewNop(),
		now:           time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Prepare decodes, shape-checks, normalizes and validates the request body
// and resolves its locale. Errors are *model.ValidationError or
// ErrUnknownLocale.
func (g *Generator) Prepare(req Request) (model.Resume, *locale.Locale, error) {
	loc := g.defaultLocale
	if req.Locale != "" {
		l, err := locale.Lookup(req.Locale)
		if err != nil {
			return model.Resume{}, nil, fmt.Errorf("%w: %q", ErrUnknownLocale, req.Locale)
		}
		loc = l
	}

	if len(bytes.TrimSpace(req.Body)) == 0 {
		return model.Resume{}, loc, &model.ValidationError{Code: model.CodeInvalidPayload, Message: "empty request body"}
	}
	raw, err := decode(req.Body)
	if err != nil {
		return model.Resume{}, loc, &model.ValidationError{Code: model.CodeInvalidPayload, Message: "malformed JSON: " + err.Error()}
	}
	if err := model.ValidateShape(raw); err != nil {
		return model.Resume{}, loc, err
	}
	doc := model.NewResumeFromMap(raw.(map[string]interface{}))
	if verr := model.Validate(doc); verr != nil {
		return model.Resume{}, loc, verr
	}
	return doc, loc, nil
}

// decode keeps numbers as json.Number so long digit strings sent as numbers
// (phone numbers) survive untouched.
func decode(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after document")
	}
	return raw, nil
}

// Engine resolves an engine name; empty means the layout engine.
func (g *Generator) Engine(name string) (Engine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = EngineLayout
	}
	if e, ok := g.engines[name]; ok {
		return e, nil
	}
	if name == EngineChrome {
		return nil, fmt.Errorf("%w: %s", ErrEngineDisabled, name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Generate produces the whole PDF or an error; there is no partial output.
func (g *Generator) Generate(ctx context.Context, req Request) (*Document, error) {
	start := g.now()
	ctx, span := g.tracer.Start(ctx, "Generator.Generate")
	defer span.End()

	log := g.log.With(zap.String("request_id", req.RequestID))
	gen := &domain.Generation{
		ID:        uuid.New(),
		RequestID: req.RequestID,
		CreatedAt: start,
	}

	engine, err := g.Engine(req.Engine)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	gen.Engine = engine.Name()
	span.SetAttributes(attribute.String("engine", gen.Engine))

	doc, loc, err := g.validate(ctx, req)
	if loc != nil {
		gen.Locale = loc.Tag
	}
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			gen.ErrorCode = verr.Code
			log.Info("document rejected", zap.String("code", verr.Code), zap.String("field", verr.Field))
		}
		span.SetStatus(codes.Error, err.Error())
		g.finish(ctx, log, gen, domain.OutcomeRejected, start)
		return nil, err
	}
	gen.Name = doc.Name
	gen.Filename = Filename(loc.FilenamePrefix, doc.Name)

	out, res, err := g.render(ctx, engine, doc, loc, start)
	if err != nil {
		gen.ErrorCode = "render_failed"
		log.Error("render failed", zap.String("engine", gen.Engine), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.finish(ctx, log, gen, domain.OutcomeFailed, start)
		return nil, err
	}

	gen.Pages, gen.Bytes = res.Pages, len(out)
	span.SetAttributes(attribute.Int("pages", res.Pages), attribute.Int("bytes", len(out)))
	g.finish(ctx, log, gen, domain.OutcomeOK, start)
	log.Debug("document rendered",
		zap.String("engine", gen.Engine),
		zap.Int("pages", res.Pages),
		zap.Int("bytes", len(out)),
		zap.Duration("took", gen.Duration))

	return &Document{Bytes: out, Pages: res.Pages, Filename: gen.Filename, Engine: gen.Engine}, nil
}

// Preview returns the HTML rendition of a valid document.
func (g *Generator) Preview(ctx context.Context, req Request) (string, error) {
	doc, loc, err := g.validate(ctx, req)
	if err != nil {
		return "", err
	}
	return preview.HTML(render.NewFormatter(loc), doc, g.now())
}

func (g *Generator) validate(ctx context.Context, req Request) (model.Resume, *locale.Locale, error) {
	_, span := g.tracer.Start(ctx, "Generator.validate")
	defer span.End()
	doc, loc, err := g.Prepare(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return doc, loc, err
}

func (g *Generator) render(ctx context.Context, e Engine, doc model.Resume, loc *locale.Locale, now time.Time) (out []byte, res render.Result, err error) {
	ctx, span := g.tracer.Start(ctx, "Generator.render", trace.WithAttributes(attribute.String("engine", e.Name())))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &RenderFailure{Engine: e.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	out, res, err = e.Render(ctx, doc, loc, now)
	if err != nil {
		return nil, res, &RenderFailure{Engine: e.Name(), Err: err}
	}
	if !bytes.HasPrefix(out, pdfMagic) {
		return nil, res, &RenderFailure{Engine: e.Name(), Err: fmt.Errorf("%w (len=%d)", ErrInvalidOutput, len(out))}
	}
	return out, res, nil
}

// finish records metrics and writes the audit row. Audit failures are logged
// and never reach the caller.
func (g *Generator) finish(ctx context.Context, log *zap.Logger, gen *domain.Generation, outcome string, start time.Time) {
	gen.Outcome = outcome
	gen.Duration = g.now().Sub(start)
	g.metrics.ObserveRender(gen.Engine, outcome, gen.Duration, gen.Pages, gen.Bytes)

	if g.repo == nil {
		return
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := g.repo.Save(sctx, gen); err != nil {
		log.Warn("audit write failed", zap.Error(err))
	}
}

// Filename is "<prefix>_<Name_With_Underscores>.pdf". Characters that could
// break a Content-Disposition header are dropped.
func Filename(prefix, name string) string {
	var words []string
	for _, w := range strings.Fields(name) {
		w = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' || r == '_' {
				return r
			}
			return -1
		}, w)
		if w != "" {
			words = append(words, w)
		}
	}
	base := strings.Trim(strings.Join(words, "_"), "_.")
	if base == "" {
		return prefix + ".pdf"
	}
	return prefix + "_" + base + ".pdf"
}
