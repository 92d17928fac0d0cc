package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
)

// GiveawayHandler manages giveaway lifecycle endpoints.
type GiveawayHandler struct {
	facade GiveawayAdminFacade
}

// NewGiveawayHandler constructs GiveawayHandler.
func NewGiveawayHandler(facade GiveawayAdminFacade) *GiveawayHandler {
	return &GiveawayHandler{facade: facade}
}

// Create handles POST /api/admin/giveaways.
func (h *GiveawayHandler) Create(c *gin.Context) {
	var req dto.CreateGiveawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	giveaway := &model.Giveaway{
		Title:                req.Title,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		MaxEntries:           req.MaxEntries,
		AdditionalEntryPrice: req.AdditionalEntryPrice,
	}

	created, err := h.facade.CreateGiveaway(c.Request.Context(), giveaway)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toGiveawayResponse(created))
}

// Transition handles PATCH /api/admin/giveaways/:id/status.
func (h *GiveawayHandler) Transition(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	status, ok := parseGiveawayStatus(req.Status)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	giveaway, err := h.facade.TransitionGiveaway(c.Request.Context(), id, status)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toGiveawayResponse(giveaway))
}

// Get handles GET /api/giveaways/:id.
func (h *GiveawayHandler) Get(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	giveaway, err := h.facade.Giveaway(c.Request.Context(), id)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toGiveawayResponse(giveaway))
}

// List handles GET /api/giveaways.
func (h *GiveawayHandler) List(c *gin.Context) {
	giveaways, err := h.facade.Giveaways(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(giveaways) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.GiveawayResponse, 0, len(giveaways))
	for i := range giveaways {
		resp = append(resp, *toGiveawayResponse(&giveaways[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func parseGiveawayStatus(s string) (model.GiveawayStatus, bool) {
	switch status := model.GiveawayStatus(s); status {
	case model.GiveawayStatusDraft, model.GiveawayStatusUpcoming, model.GiveawayStatusActive,
		model.GiveawayStatusEnded, model.GiveawayStatusCompleted, model.GiveawayStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

func toGiveawayResponse(g *model.Giveaway) *dto.GiveawayResponse {
	return &dto.GiveawayResponse{
		ID:                   g.ID,
		Title:                g.Title,
		Status:               string(g.Status),
		StartDate:            g.StartDate,
		EndDate:              g.EndDate,
		MaxEntries:           g.MaxEntries,
		AdditionalEntryPrice: g.AdditionalEntryPrice,
		CreatedAt:            g.CreatedAt,
	}
}
