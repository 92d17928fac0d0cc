package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
)

// EntryHandler manages entry admission endpoints.
type EntryHandler struct {
	facade EntryFacade
}

// NewEntryHandler constructs EntryHandler.
func NewEntryHandler(facade EntryFacade) *EntryHandler {
	return &EntryHandler{facade: facade}
}

// EnterFree handles POST /api/giveaways/:id/enter.
func (h *EntryHandler) EnterFree(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	entry, err := h.facade.EnterFree(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toEntryResponse(*entry))
}

// Purchase handles POST /api/giveaways/:id/purchase-entry.
func (h *EntryHandler) Purchase(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	intent, entries, err := h.facade.PurchaseEntries(c.Request.Context(), id, CurrentUserID(c), req.Quantity)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	resp := dto.PurchaseResponse{
		Payment: dto.PaymentIntentResponse{
			Reference: intent.Reference,
			Status:    string(intent.Status),
			Amount:    intent.Amount,
			Currency:  intent.Currency,
		},
		Entries: make([]dto.EntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(entry))
	}

	c.JSON(http.StatusAccepted, resp)
}

// Status handles GET /api/giveaways/:id/enter.
func (h *EntryHandler) Status(c *gin.Context) {
	id, ok := giveawayID(c)
	if !ok {
		return
	}

	summary, err := h.facade.EntryStatus(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.EntrySummaryResponse{
		FreeEntryUsed:  summary.FreeEntryUsed,
		TotalEntries:   summary.TotalEntries,
		PendingEntries: summary.PendingEntries,
	})
}

func toEntryResponse(entry model.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:          entry.ID,
		GiveawayID:  entry.GiveawayID,
		EntryNumber: entry.EntryNumber,
		Type:        string(entry.Type),
		Status:      string(entry.Status),
		CreatedAt:   entry.CreatedAt,
	}
}
