package router

import (
	"fmt"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/health"

	"github.com/gin-gonic/gin"
)

// setupHealthRoutes registers health check endpoints backed by the
// periodic checker.
func (r *Router) setupHealthRoutes() {
	checker := health.NewChecker(r.Logger, 30*time.Second)

	checker.RegisterCheck("database", func() (health.Status, string, error) {
		if err := r.Container.DB.Exec("SELECT 1").Error; err != nil {
			return health.StatusDown, "Database unreachable", err
		}
		return health.StatusUp, "Database connection ok", nil
	})

	checker.RegisterCheck("websocket", func() (health.Status, string, error) {
		return health.StatusUp, fmt.Sprintf("%d active connections", r.Hub.ActiveConnections()), nil
	})

	// Redis is optional; report degraded rather than down when it is
	// configured but unreachable, since the services fall back to
	// uncached behavior.
	if r.Container.Cache != nil {
		checker.RegisterCheck("redis", func() (health.Status, string, error) {
			if err := r.Container.Cache.Ping(); err != nil {
				return health.StatusDegraded, "Redis unreachable, caching disabled", err
			}
			return health.StatusUp, "Redis connection ok", nil
		})
	}

	checker.Start()

	handler := gin.WrapF(checker.HTTPHandler())

	// Register both health endpoint paths for compatibility
	r.Engine.GET("/health", handler)
	r.Engine.GET("/api/health", handler)
}
