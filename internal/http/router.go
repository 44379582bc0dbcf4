package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Davie-07/KTVC-FINAL-sub001/internal/http/handlers"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/http/middleware"
)

func BuildRouter(gh *handlers.GateHandlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	gate := r.Group("/gate").Use(jwtmw.WithJWT(), cb.Enforce())
	gate.POST("/verify", gh.Verify)
	gate.GET("/attempts/:admissionNumber", gh.History)

	return r
}
