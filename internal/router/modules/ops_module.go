package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OpsModule serves the root banner and, when enabled, Prometheus metrics.
// It is registered on the engine root rather than under /api.
type OpsModule struct {
	Version        string
	MetricsEnabled bool
}

func NewOpsModule(version string, metricsEnabled bool) *OpsModule {
	return &OpsModule{Version: version, MetricsEnabled: metricsEnabled}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Bonjour je suis un serveur!",
			"version": m.Version,
			"status":  "ok",
		})
	})
	if m.MetricsEnabled {
		rg.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
