package usecase

import "github.com/prizelab/giveawayd/internal/domain/model"

// MaxPurchaseQuantity bounds entries bought in a single payment.
const MaxPurchaseQuantity = 10

// MaxWinnersPerDraw bounds the requested winner count for one draw.
const MaxWinnersPerDraw = 10

// ValidatePurchaseQuantity checks that a purchase request stays within bounds.
func ValidatePurchaseQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= MaxPurchaseQuantity
}

// ClampWinnerCount forces the requested winner count into [1, MaxWinnersPerDraw].
func ClampWinnerCount(requested int) int {
	if requested < 1 {
		return 1
	}
	if requested > MaxWinnersPerDraw {
		return MaxWinnersPerDraw
	}
	return requested
}

var allowedTransitions = map[model.GiveawayStatus][]model.GiveawayStatus{
	model.GiveawayStatusDraft:    {model.GiveawayStatusUpcoming, model.GiveawayStatusActive, model.GiveawayStatusCancelled},
	model.GiveawayStatusUpcoming: {model.GiveawayStatusActive, model.GiveawayStatusCancelled},
	model.GiveawayStatusActive:   {model.GiveawayStatusEnded, model.GiveawayStatusCancelled},
	model.GiveawayStatusEnded:    {model.GiveawayStatusCompleted, model.GiveawayStatusCancelled},
}

// CanTransition reports whether a giveaway may move between the two states.
// Completed and cancelled are terminal.
func CanTransition(from, to model.GiveawayStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
