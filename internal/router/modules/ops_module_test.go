package modules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opsRouter(metricsEnabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewOpsModule("1.2.3", metricsEnabled).Register(&r.RouterGroup)
	return r
}

func TestBanner(t *testing.T) {
	w := httptest.NewRecorder()
	opsRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Bonjour je suis un serveur!", body["message"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpointToggle(t *testing.T) {
	w := httptest.NewRecorder()
	opsRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	opsRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
