package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	log := zap.New(core)
	r := gin.New()
	r.Use(TraceID(), Logger(log, "/api/health"), Recovery(log))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/snapshot", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r, logs
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLogger_Levels(t *testing.T) {
	r, logs := newObservedRouter(zapcore.DebugLevel)

	serve(r, "/api/health")
	assert.Zero(t, logs.Len(), "quiet path is not logged")

	serve(r, "/api/snapshot")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)

	serve(r, "/missing")
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
	assert.Equal(t, int64(404), logs.All()[1].ContextMap()["status"])
}

func TestLogger_InfoLevelDropsSuccess(t *testing.T) {
	r, logs := newObservedRouter(zapcore.InfoLevel)
	serve(r, "/api/snapshot")
	assert.Zero(t, logs.Len())
}

func TestRecovery(t *testing.T) {
	r, logs := newObservedRouter(zapcore.DebugLevel)
	w := serve(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), w.Header().Get(TraceIDHeader))

	panics := logs.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "boom", panics[0].ContextMap()["error"])
}
