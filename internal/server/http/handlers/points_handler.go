package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
)

// PointsHandler manages points ledger endpoints.
type PointsHandler struct {
	facade PointsFacade
}

// NewPointsHandler constructs PointsHandler.
func NewPointsHandler(facade PointsFacade) *PointsHandler {
	return &PointsHandler{facade: facade}
}

// Balance handles GET /api/points/balance.
func (h *PointsHandler) Balance(c *gin.Context) {
	balance, err := h.facade.Balance(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// Transactions handles GET /api/points/transactions.
func (h *PointsHandler) Transactions(c *gin.Context) {
	transactions, err := h.facade.Transactions(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(transactions) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, toTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, resp)
}

// Spend handles POST /api/points/spend.
func (h *PointsHandler) Spend(c *gin.Context) {
	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	tx, err := h.facade.SpendPoints(c.Request.Context(), CurrentUserID(c), req.Amount, req.Description)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(*tx))
}

// Grant handles POST /api/admin/points/grant.
func (h *PointsHandler) Grant(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.UserID < 1 {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	tx, err := h.facade.GrantPoints(c.Request.Context(), req.UserID, model.TransactionType(req.Type), req.Amount, req.Description)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(*tx))
}

func toTransactionResponse(tx model.PointsTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}
