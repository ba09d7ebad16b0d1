package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		otel.SetTextMapPropagator(prevProp)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func newTracedRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Tracing(), SpanEnricher())
	router.GET("/api/movie/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"result": []any{}})
	})
	router.POST("/api/movie/toggle/:id", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update movie status"})
	})
	return router
}

func TestTracing(t *testing.T) {
	t.Run("records a server span named after the route", func(t *testing.T) {
		recorder := setupTestTracer(t)
		router := newTracedRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/movie/", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "GET /api/movie/", spans[0].Name())
		assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())

		v, ok := spanAttr(spans[0], "request_id")
		require.True(t, ok)
		assert.Equal(t, "req-42", v.AsString())
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("marks client errors", func(t *testing.T) {
		recorder := setupTestTracer(t)
		router := newTracedRouter()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/movie/toggle/abc", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "POST /api/movie/toggle/:id", spans[0].Name())
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, http.StatusText(http.StatusBadRequest), spans[0].Status().Description)
	})

	t.Run("continues an incoming trace", func(t *testing.T) {
		recorder := setupTestTracer(t)
		router := newTracedRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/movie/", nil)
		req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
		router.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	})
}

func TestTracing_Disabled(t *testing.T) {
	recorder := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, recorder.Ended())
}
