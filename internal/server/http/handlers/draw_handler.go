package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
)

// DrawHandler manages winner selection endpoints.
type DrawHandler struct {
	facade DrawFacade
}

// NewDrawHandler constructs DrawHandler.
func NewDrawHandler(facade DrawFacade) *DrawHandler {
	return &DrawHandler{facade: facade}
}

// Draw handles POST /api/admin/giveaways/:id/draw.
func (h *DrawHandler) Draw(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	var req dto.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	winners, err := h.facade.DrawWinners(c.Request.Context(), id, req.NumberOfWinners)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toWinnerResponses(winners))
}

// List handles GET /api/giveaways/:id/winners.
func (h *DrawHandler) List(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	winners, err := h.facade.Winners(c.Request.Context(), id)
	if err != nil {
		c.Status(statusForError(err))
		return
	}
	if len(winners) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, toWinnerResponses(winners))
}

func toWinnerResponses(winners []model.Winner) []dto.WinnerResponse {
	resp := make([]dto.WinnerResponse, 0, len(winners))
	for _, w := range winners {
		resp = append(resp, dto.WinnerResponse{
			UserID:      w.UserID,
			EntryID:     w.EntryID,
			EntryNumber: w.EntryNumber,
			SelectedAt:  w.SelectedAt,
			ClaimStatus: string(w.ClaimStatus),
		})
	}
	return resp
}
