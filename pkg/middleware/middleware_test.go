package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-reporting-tap/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	m.Run()
}

func TestLoggingMiddleware_AddsCorrelationIDToContext(t *testing.T) {
	var correlationID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)

	LoggingMiddleware()(next).ServeHTTP(recorder, request)

	assert.NotEmpty(t, correlationID)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestLogPanicMiddleware_RecoversAndResponds500(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("algo deu muito errado")
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)

	assert.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(recorder, request)
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("origem permitida recebe os headers", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		request.Header.Set("Origin", "http://localhost:3000")

		Cors()(next).ServeHTTP(recorder, request)

		assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origem desconhecida não recebe os headers", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		request.Header.Set("Origin", "http://evil.example")

		Cors()(next).ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight OPTIONS responde direto", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodOptions, "/v1/sync/run", nil)
		request.Header.Set("Origin", "http://localhost:8000")

		Cors()(next).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "GET, POST, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
	})
}
