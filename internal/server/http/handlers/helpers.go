package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// giveawayID parses the :id path parameter, aborting with 404 on garbage.
func giveawayID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// statusForError maps business errors to HTTP statuses shared across handlers.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrNotAcceptingEntries):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrCapacityExceeded),
		errors.Is(err, domainErrors.ErrFreeEntryAlreadyUsed),
		errors.Is(err, domainErrors.ErrWinnersAlreadyDrawn),
		errors.Is(err, domainErrors.ErrGiveawayNotActive),
		errors.Is(err, domainErrors.ErrGiveawayNotEnded),
		errors.Is(err, domainErrors.ErrNoEntries),
		errors.Is(err, domainErrors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrFreeEntryRequired),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidGiveaway):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrConcurrencyExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
