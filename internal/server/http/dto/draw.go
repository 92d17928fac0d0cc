package dto

import "time"

// DrawRequest describes the admin draw payload.
type DrawRequest struct {
	NumberOfWinners int `json:"numberOfWinners"`
}

// WinnerResponse describes one drawn winner.
type WinnerResponse struct {
	UserID      int64     `json:"user_id"`
	EntryID     int64     `json:"entry_id"`
	EntryNumber int       `json:"entry_number"`
	SelectedAt  time.Time `json:"selected_at"`
	ClaimStatus string    `json:"claim_status"`
}
