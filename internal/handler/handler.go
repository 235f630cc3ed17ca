package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/service"
)

// APIV1Prefix is the base path for every JSON endpoint.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
// live may be nil when the WebSocket feed is disabled; base bounds live connections.
func Register(base context.Context, r *gin.Engine, store Pinger, tracker *service.Tracker, live LiveServer) {
	h := NewHealthHandler(store)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSessionHandler(tracker).Register(api)
		NewMatchHandler(tracker).Register(api)
		NewCurrentHandler(tracker).Register(api)
		if live != nil {
			NewLiveHandler(base, live, tracker).Register(api)
		}
	}
}
