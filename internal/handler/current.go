package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/model"
	"github.com/maxviazov/boxscore-tracker/internal/service"
	"github.com/maxviazov/boxscore-tracker/pkg/response"
)

// CurrentService acts on the match open on the detail screen.
type CurrentService interface {
	Current(ctx context.Context) (service.MatchView, error)
	AdjustStat(ctx context.Context, side model.Side, index int, stat model.StatID, delta int) (model.Player, error)
	ToggleOnCourt(ctx context.Context, side model.Side, index int) (model.Player, int, error)
	BeginEdit(ctx context.Context) (service.MatchView, error)
	EditPlayer(ctx context.Context, side model.Side, index int, field, value string) (model.Player, error)
	SaveEdit(ctx context.Context) (service.MatchView, error)
	ExportCSV(ctx context.Context) (service.Export, error)
	Analyze(ctx context.Context, kind analysis.Kind) (analysis.Result, error)
}

type CurrentHandler struct {
	svc CurrentService
}

func NewCurrentHandler(svc CurrentService) *CurrentHandler { return &CurrentHandler{svc: svc} }

func (h *CurrentHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/current")
	{
		g.GET("", h.get)
		g.POST("/stats", h.adjust)
		g.POST("/court", h.toggle)
		g.POST("/edit", h.beginEdit)
		g.PATCH("/edit/players", h.editPlayer)
		g.POST("/edit/save", h.saveEdit)
		g.GET("/export", h.export)
		g.POST("/analysis", h.analyze)
	}
}

// playerRef addresses a roster slot. Index is a pointer so a missing index is caught.
type playerRef struct {
	Team  string `json:"team"`
	Index *int   `json:"index"`
}

func (p playerRef) resolve() (model.Side, int, []service.FieldError) {
	var fe []service.FieldError
	side := model.ParseSide(p.Team)
	if side == model.SideUnknown {
		fe = append(fe, service.FieldError{Field: "team", Message: "must be teamA or teamB"})
	}
	if p.Index == nil {
		fe = append(fe, service.FieldError{Field: "index", Message: "is required"})
		return side, -1, fe
	}
	return side, *p.Index, fe
}

type adjustRequest struct {
	playerRef
	Stat  string `json:"stat"`
	Delta *int   `json:"delta"`
}

type editPlayerRequest struct {
	playerRef
	Field string `json:"field"`
	Value string `json:"value"`
}

type analysisRequest struct {
	Kind string `json:"kind"`
}

type toggleResponse struct {
	Player model.Player `json:"player"`
	Index  int          `json:"index"`
}

func (h *CurrentHandler) get(c *gin.Context) {
	v, err := h.svc.Current(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, v)
}

// adjust takes delta +1 when omitted; zero is rejected.
func (h *CurrentHandler) adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	side, index, fe := req.resolve()
	stat := model.ParseStatID(req.Stat)
	if stat == model.StatUnknown {
		fe = append(fe, service.FieldError{Field: "stat", Message: "unknown stat"})
	}
	delta := 1
	if req.Delta != nil {
		delta = *req.Delta
	}
	if delta == 0 {
		fe = append(fe, service.FieldError{Field: "delta", Message: "must not be zero"})
	}
	if err := service.NewInvalidInputError(fe); err != nil {
		response.WriteError(c, err)
		return
	}
	p, err := h.svc.AdjustStat(c.Request.Context(), side, index, stat, delta)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *CurrentHandler) toggle(c *gin.Context) {
	var req playerRef
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	side, index, fe := req.resolve()
	if err := service.NewInvalidInputError(fe); err != nil {
		response.WriteError(c, err)
		return
	}
	p, at, err := h.svc.ToggleOnCourt(c.Request.Context(), side, index)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, toggleResponse{Player: p, Index: at})
}

func (h *CurrentHandler) beginEdit(c *gin.Context) {
	v, err := h.svc.BeginEdit(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, v)
}

func (h *CurrentHandler) editPlayer(c *gin.Context) {
	var req editPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	side, index, fe := req.resolve()
	if err := service.NewInvalidInputError(fe); err != nil {
		response.WriteError(c, err)
		return
	}
	p, err := h.svc.EditPlayer(c.Request.Context(), side, index, req.Field, req.Value)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *CurrentHandler) saveEdit(c *gin.Context) {
	v, err := h.svc.SaveEdit(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, v)
}

func (h *CurrentHandler) export(c *gin.Context) {
	exp, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exp.FileName+`"`)
	c.Data(http.StatusOK, exp.ContentType, exp.Body)
}

// analyze answers 200 even when the generator failed; Failed carries that.
func (h *CurrentHandler) analyze(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	kind, ok := analysis.ParseKind(req.Kind)
	if !ok {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "kind", Message: "must be one of summary, team_a, team_b, mvp"}}))
		return
	}
	res, err := h.svc.Analyze(c.Request.Context(), kind)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
