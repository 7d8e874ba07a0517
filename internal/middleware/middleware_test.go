package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mcoot/ranchgame/internal/testutil"
)

func TestLoggingRecordsStatusAndSize(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/api/v1/health", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(len("short and stout")), entry["size"])
}

func TestRecoveryUsesPanicHandler(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	h := Recovery(logger, DefaultPanicHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestTracingPassesThrough(t *testing.T) {
	h := Tracing()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRecoveryInsideTracingReportsServerError(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	h := Tracing()(Recovery(logger, DefaultPanicHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), `"path":"/boom"`)
}

const secretID = "8c2d1f0e5a6b4c3d9e8f7a6b5c4d3e2f"

func routed(mw ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	for _, m := range mw {
		r.Use(m)
	}
	r.HandleFunc("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fail") != "" {
			panic("kaboom")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestLoggingUsesRouteTemplate(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	rr := httptest.NewRecorder()
	routed(Logging(logger)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/"+secretID, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/things/{id}", entry["path"])
	assert.NotContains(t, buf.String(), secretID)
}

func TestRecoveryUsesRouteTemplate(t *testing.T) {
	logger, buf := testutil.BufferLogger()

	rr := httptest.NewRecorder()
	routed(Recovery(logger, DefaultPanicHandler)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/"+secretID+"?fail=1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), `"path":"/things/{id}"`)
	assert.NotContains(t, buf.String(), secretID)
}

func TestTracingNamesSpanByRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rr := httptest.NewRecorder()
	routed(Tracing()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/"+secretID, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /things/{id}", spans[0].Name())
	for _, attr := range spans[0].Attributes() {
		assert.NotContains(t, attr.Value.Emit(), secretID, "attribute %s", attr.Key)
	}
}
