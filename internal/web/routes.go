package web

import (
	"github.com/gin-gonic/gin"

	"github.com/Veraticus/sector-sift/internal/telemetry"
)

// setupRoutes configures all routes.
func setupRoutes(router *gin.Engine, s *Server) {
	router.GET("/health", s.HealthCheck)
	router.GET("/metrics", gin.WrapH(telemetry.Handler(s.registry)))

	// HTML form
	router.GET("/", s.Index)
	router.POST("/classify", s.ClassifyForm)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", s.Classify) // POST /api/v1/classify
		v1.POST("/batch", s.Batch)       // POST /api/v1/batch
		v1.GET("/rules", s.ListRules)    // GET /api/v1/rules

		runs := v1.Group("/runs")
		{
			runs.GET("", s.ListRuns)         // GET /api/v1/runs
			runs.GET("/:id", s.GetRun)       // GET /api/v1/runs/:id
			runs.DELETE("/:id", s.DeleteRun) // DELETE /api/v1/runs/:id
		}
	}
}
