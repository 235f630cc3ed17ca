package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/pkg/response"
)

// LiveServer upgrades a request into a subscription for one match.
type LiveServer interface {
	Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, matchID string) error
}

// MatchLookup tells the live handler whether a match exists.
type MatchLookup interface {
	HasMatch(id string) bool
}

// LiveHandler serves the WebSocket feed. Connections outlive the request, so they
// are tied to the server's base context instead.
type LiveHandler struct {
	base    context.Context
	hub     LiveServer
	matches MatchLookup
}

func NewLiveHandler(base context.Context, hub LiveServer, matches MatchLookup) *LiveHandler {
	return &LiveHandler{base: base, hub: hub, matches: matches}
}

func (h *LiveHandler) Register(r *gin.RouterGroup) {
	r.GET("/matches/:id/live", h.subscribe)
}

func (h *LiveHandler) subscribe(c *gin.Context) {
	id := c.Param("id")
	if !h.matches.HasMatch(id) {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	if err := h.hub.Serve(h.base, c.Writer, c.Request, id); err != nil {
		// the upgrader has already written the HTTP error
		_ = c.Error(err)
		c.Abort()
	}
}
