// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/modules/orchestrator"
	"voyage/internal/modules/report"
	"voyage/internal/trip"
)

type ServerDeps struct {
	Trips        *trip.Store
	Orchestrator *orchestrator.Service
	Jobs         orchestrator.JobStore
	Reports      *report.Service
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	tripHandler := handlers.NewTripHandler(s.deps.Trips, s.deps.Orchestrator, s.deps.Jobs)
	r.POST("/api/trips", tripHandler.Create)
	r.PUT("/api/trips/:id", tripHandler.Update)
	r.POST("/api/trips/:id/preview", tripHandler.Preview)
	r.POST("/api/trips/:id/generate", tripHandler.Generate)
	r.GET("/api/trips/:id/status", tripHandler.Status)

	reportHandler := handlers.NewReportHandler(s.deps.Reports)
	r.GET("/api/trips/:id/report", reportHandler.GetReport)
	r.GET("/api/trips/:id/report/:section", reportHandler.GetSection)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
