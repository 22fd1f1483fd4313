package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	httpadapter "resume-pdf/internal/adapter/http"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/metrics"
	"resume-pdf/internal/model"
	"resume-pdf/internal/render"
	"resume-pdf/internal/usecase"
	infra "resume-pdf/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const validBody = `{"nome":"Ana Souza","telefone":"11999999999","email":"ana@x.com","objetivo":"Busco vaga",
"formacoes":[{"curso":"ADS","escola":"X","status":"Cursando","inicio":"2022-01"}]}`

type panicEngine struct{}

func (panicEngine) Name() string { return usecase.EngineLayout }

func (panicEngine) Render(context.Context, model.Resume, *locale.Locale, time.Time) ([]byte, render.Result, error) {
	panic("boom")
}

func newApp(t *testing.T, engine usecase.Engine, bodyLimit int) (*fiber.App, *metrics.Metrics) {
	log := zaptest.NewLogger(t)
	m := metrics.New()
	gen := usecase.NewGenerator(engine,
		usecase.WithLogger(log),
		usecase.WithMetrics(m),
		usecase.WithClock(func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }),
	)
	app := httpadapter.NewApp(httpadapter.NewHandler(gen, log), httpadapter.Options{
		BodyLimit: bodyLimit,
		Metrics:   m,
		Log:       log,
	})
	return app, m
}

func post(t *testing.T, app *fiber.App, target, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type errResp struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func decodeErr(t *testing.T, resp *http.Response) errResp {
	var e errResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestGeneratePDF(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)

	for _, path := range []string{"/generate_pdf", "/api/curriculo"} {
		resp := post(t, app, path, validBody)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)

		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="curriculo_Ana_Souza.pdf"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "1", resp.Header.Get("X-Page-Count"))
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "%PDF"))
		assert.Equal(t, resp.Header.Get("Content-Length"), strconv.Itoa(len(body)))
	}
}

func TestGeneratePDFValidationErrors(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)

	resp := post(t, app, "/generate_pdf", `{"nome":"Ana","email":"a@b","objetivo":"x"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	e := decodeErr(t, resp)
	assert.Equal(t, model.CodeMissingField, e.Error.Code)
	assert.Equal(t, "telefone", e.Error.Field)

	resp = post(t, app, "/generate_pdf", `{"nome":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, model.CodeInvalidPayload, decodeErr(t, resp).Error.Code)

	resp = post(t, app, "/generate_pdf?engine=word", validBody)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	e = decodeErr(t, resp)
	assert.Equal(t, httpadapter.CodeInvalidEngine, e.Error.Code)
	assert.Equal(t, "engine", e.Error.Field)

	resp = post(t, app, "/generate_pdf?engine=chrome", validBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = post(t, app, "/generate_pdf?lang=xx", validBody)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, httpadapter.CodeInvalidLocale, decodeErr(t, resp).Error.Code)
}

func TestGeneratePDFRenderFailure(t *testing.T) {
	app, _ := newApp(t, panicEngine{}, 1<<20)
	resp := post(t, app, "/generate_pdf", validBody)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	e := decodeErr(t, resp)
	assert.Equal(t, httpadapter.CodeRenderFailed, e.Error.Code)
	assert.Contains(t, e.Error.Message, "boom")
}

func TestPreviewEndpoint(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)
	resp := post(t, app, "/preview?lang=en", validBody)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Generated on 10/17/2026")
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-Id"))
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `curriculo_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestNotFoundUsesErrorShape(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decodeErr(t, resp).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 1<<20)
	req := httptest.NewRequest(http.MethodOptions, "/generate_pdf", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

// The body limit is enforced by the server while reading the request, before
// any handler runs, so it is exercised through a real listener.
func TestBodyLimit(t *testing.T) {
	app, _ := newApp(t, infra.NewFPDFEngine(nil), 64)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	resp, err := http.Post("http://"+ln.Addr().String()+"/generate_pdf", "application/json", strings.NewReader(validBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "payload_too_large", decodeErr(t, resp).Error.Code)
}
