package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiveawayStatus describes the giveaway lifecycle state.
type GiveawayStatus string

const (
	GiveawayStatusDraft     GiveawayStatus = "draft"
	GiveawayStatusUpcoming  GiveawayStatus = "upcoming"
	GiveawayStatusActive    GiveawayStatus = "active"
	GiveawayStatusEnded     GiveawayStatus = "ended"
	GiveawayStatusCompleted GiveawayStatus = "completed"
	GiveawayStatusCancelled GiveawayStatus = "cancelled"
)

// Giveaway represents a single prize giveaway run by an admin.
type Giveaway struct {
	ID                   int64
	Title                string
	Status               GiveawayStatus
	StartDate            time.Time
	EndDate              time.Time
	MaxEntries           *int
	AdditionalEntryPrice decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AcceptingEntries reports whether new entries may be admitted at the given time.
func (g *Giveaway) AcceptingEntries(now time.Time) bool {
	return g.Status == GiveawayStatusActive && !now.Before(g.StartDate) && now.Before(g.EndDate)
}

// Drawable reports whether the giveaway is eligible for a winner draw at the given time.
func (g *Giveaway) Drawable(now time.Time) bool {
	if g.Status != GiveawayStatusActive && g.Status != GiveawayStatusEnded {
		return false
	}
	return !now.Before(g.EndDate)
}
