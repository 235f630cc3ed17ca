package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/model"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/internal/service"
	"github.com/maxviazov/boxscore-tracker/pkg/response"
)

// MatchService covers the home screen.
type MatchService interface {
	ListMatches(ctx context.Context, p repository.Page) (repository.PageResult[service.MatchSummary], error)
	GetMatch(ctx context.Context, id string) (model.Match, error)
	CreateMatch(ctx context.Context, date, home, away string) (model.Match, error)
	CloneMatch(ctx context.Context, srcID, date string) (model.Match, error)
	DeleteMatch(ctx context.Context, id string) (service.SessionView, error)
	Open(ctx context.Context, id string) (service.SessionView, error)
}

type MatchHandler struct {
	svc MatchService
}

func NewMatchHandler(svc MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.delete)
		g.POST("/:id/clone", h.clone)
		g.POST("/:id/open", h.open)
	}
}

type createMatchRequest struct {
	Date     string `json:"date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

type cloneMatchRequest struct {
	Date string `json:"date"`
}

func (h *MatchHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListMatches(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	m, err := h.svc.CreateMatch(c.Request.Context(), req.Date, req.HomeTeam, req.AwayTeam)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, m)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	m, err := h.svc.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}

// clone accepts an empty body; the date then defaults to today.
func (h *MatchHandler) clone(c *gin.Context) {
	var req cloneMatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.WriteError(c, service.ErrInvalidInput)
			return
		}
	}
	m, err := h.svc.CloneMatch(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, m)
}

func (h *MatchHandler) delete(c *gin.Context) {
	s, err := h.svc.DeleteMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}

func (h *MatchHandler) open(c *gin.Context) {
	s, err := h.svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}
