package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/service"
	"github.com/maxviazov/boxscore-tracker/pkg/response"
)

// SessionService drives the screen state machine.
type SessionService interface {
	Session() service.SessionView
	Login(ctx context.Context) (service.SessionView, error)
	Logout(ctx context.Context) service.SessionView
	Back(ctx context.Context) (service.SessionView, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/session")
	{
		g.GET("", h.get)
		g.POST("/login", h.login)
		g.POST("/logout", h.logout)
		g.POST("/back", h.back)
	}
}

func (h *SessionHandler) get(c *gin.Context) {
	response.WriteData(c, http.StatusOK, h.svc.Session())
}

// login is a screen transition only; any body is ignored.
func (h *SessionHandler) login(c *gin.Context) {
	s, err := h.svc.Login(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}

func (h *SessionHandler) logout(c *gin.Context) {
	response.WriteData(c, http.StatusOK, h.svc.Logout(c.Request.Context()))
}

func (h *SessionHandler) back(c *gin.Context) {
	s, err := h.svc.Back(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}
