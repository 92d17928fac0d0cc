package model

import "time"

// PrizeClaimStatus tracks prize delivery after a draw.
type PrizeClaimStatus string

const (
	PrizeClaimStatusUnclaimed PrizeClaimStatus = "unclaimed"
	PrizeClaimStatusNotified  PrizeClaimStatus = "notified"
	PrizeClaimStatusClaimed   PrizeClaimStatus = "claimed"
)

// Winner records one drawn entry. A user appears at most once per giveaway.
type Winner struct {
	ID          int64
	GiveawayID  int64
	UserID      int64
	EntryID     int64
	EntryNumber int
	SelectedAt  time.Time
	ClaimStatus PrizeClaimStatus
}
